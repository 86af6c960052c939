package governance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notebot-labs/chatgate/internal/contentfilter"
	"github.com/notebot-labs/chatgate/internal/quota"
	"github.com/notebot-labs/chatgate/internal/session"
)

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := session.WithClaims(req.Context(), &session.Claims{ClientID: "client-1"})
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Data
}

func TestHandlerSubmit_OK(t *testing.T) {
	gate, _, _, _ := newTestGate(t, 10)
	h := NewHandler(gate, nil)

	rec := httptest.NewRecorder()
	h.SubmitMessage(rec, authedRequest(http.MethodPost, "/api/v1/messages", `{"message":"what are the opening hours?"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "the answer", data["reply"])
	assert.Equal(t, float64(9), data["remaining_messages"])
}

func TestHandlerSubmit_Blocked(t *testing.T) {
	gate, _, _, _ := newTestGate(t, 10)
	h := NewHandler(gate, nil)

	rec := httptest.NewRecorder()
	h.SubmitMessage(rec, authedRequest(http.MethodPost, "/api/v1/messages", `{"message":"😀😀😀"}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	data := decodeBody(t, rec)
	assert.Equal(t, "blocked", data["status"])
	assert.Contains(t, data["reason"], "emojis")
}

func TestHandlerSubmit_QuotaExceeded(t *testing.T) {
	gate, _, _, _ := newTestGate(t, 1)
	h := NewHandler(gate, nil)

	rec := httptest.NewRecorder()
	h.SubmitMessage(rec, authedRequest(http.MethodPost, "/api/v1/messages", `{"message":"first question"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.SubmitMessage(rec, authedRequest(http.MethodPost, "/api/v1/messages", `{"message":"second question"}`))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "quota_exceeded", decodeBody(t, rec)["status"])
}

func TestHandlerSubmit_UpstreamError(t *testing.T) {
	tracker := quota.NewTracker(quota.NewMemoryStore(), 10)
	searcher := &stubSearcher{err: errors.New("connection refused")}
	gate := NewGate(contentfilter.New(nil), tracker, searcher, nil, 300)
	h := NewHandler(gate, nil)

	rec := httptest.NewRecorder()
	h.SubmitMessage(rec, authedRequest(http.MethodPost, "/api/v1/messages", `{"message":"a question"}`))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandlerSubmit_Unauthorized(t *testing.T) {
	gate, _, _, _ := newTestGate(t, 10)
	h := NewHandler(gate, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{"message":"hi"}`))
	h.SubmitMessage(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerSubmit_BadJSON(t *testing.T) {
	gate, _, _, _ := newTestGate(t, 10)
	h := NewHandler(gate, nil)

	rec := httptest.NewRecorder()
	h.SubmitMessage(rec, authedRequest(http.MethodPost, "/api/v1/messages", `{"message":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerValidate(t *testing.T) {
	gate, _, searcher, _ := newTestGate(t, 10)
	h := NewHandler(gate, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages/validate", strings.NewReader(`{"message":"clean text"}`))
	h.ValidateMessage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)
	assert.Equal(t, true, data["valid"])
	assert.Zero(t, searcher.calls)
}

func TestHandlerGetQuota(t *testing.T) {
	gate, tracker, _, _ := newTestGate(t, 10)
	h := NewHandler(gate, nil)

	_, err := tracker.CheckAndConsume(context.Background(), "client-1")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.GetQuota(rec, authedRequest(http.MethodGet, "/api/v1/governance/quota", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)
	assert.Equal(t, float64(9), data["remaining_messages"])
	assert.Equal(t, float64(10), data["daily_limit"])
}

func TestHandlerListAuditLogs_NoStore(t *testing.T) {
	gate, _, _, _ := newTestGate(t, 10)
	h := NewHandler(gate, nil)

	rec := httptest.NewRecorder()
	h.ListAuditLogs(rec, authedRequest(http.MethodGet, "/api/v1/governance/audit", ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParseAuditParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/audit?event_type=message.rejected&page=3&page_size=50&severity=warn", nil)
	params := parseAuditParams(req)

	assert.Equal(t, "message.rejected", params.EventType)
	assert.Equal(t, "warn", params.Severity)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 50, params.PageSize)

	req = httptest.NewRequest(http.MethodGet, "/audit?page=-1&page_size=9999", nil)
	params = parseAuditParams(req)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.PageSize)
}
