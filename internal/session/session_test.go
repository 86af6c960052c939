package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndValidate(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)

	token, err := mgr.Issue()
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	_, err = uuid.Parse(token.ClientID)
	require.NoError(t, err, "client ID should be a UUID")

	claims, err := mgr.Validate(token.Token)
	require.NoError(t, err)
	assert.Equal(t, token.ClientID, claims.ClientID)
}

func TestValidate_WrongSecret(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)
	other := NewManager("ffffffffffffffffffffffffffffffff", time.Hour)

	token, err := mgr.Issue()
	require.NoError(t, err)

	_, err = other.Validate(token.Token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	mgr := NewManager(testSecret, -time.Minute)

	token, err := mgr.Issue()
	require.NoError(t, err)

	_, err = mgr.Validate(token.Token)
	assert.Error(t, err)
}

func TestMiddleware_ValidToken(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)
	token, err := mgr.Issue()
	require.NoError(t, err)

	var gotClientID string
	handler := Middleware(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		require.NotNil(t, claims)
		gotClientID = claims.ClientID
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, token.ClientID, gotClientID)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)
	handler := Middleware(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_MalformedToken(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)
	handler := Middleware(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"Bearer not.a.token", "Basic abc", "Bearer"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestHandler_Create(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)
	h := NewHandler(mgr)

	req := httptest.NewRequest("POST", "/api/v1/session", nil)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "client_id")
}
