package governance

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/notebot-labs/chatgate/internal/api"
	"github.com/notebot-labs/chatgate/internal/governance/audit"
	"github.com/notebot-labs/chatgate/internal/session"
)

// Handler provides HTTP handlers for the message gate and governance views.
type Handler struct {
	gate      *Gate
	auditRepo *audit.Repository // nil when the audit store is not configured
	validate  *validator.Validate
}

// NewHandler creates a governance Handler. auditRepo may be nil.
func NewHandler(gate *Gate, auditRepo *audit.Repository) *Handler {
	return &Handler{
		gate:      gate,
		auditRepo: auditRepo,
		validate:  validator.New(),
	}
}

// ValidateMessage runs the content filter without consuming quota.
func (h *Handler) ValidateMessage(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	api.JSON(w, http.StatusOK, h.gate.Validate(req.Message))
}

// SubmitMessage runs the full gate and forwards accepted messages downstream.
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	claims := session.GetClaims(r.Context())
	if claims == nil {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	result, err := h.gate.Submit(r.Context(), claims.ClientID, req.Message)
	if err != nil {
		if errors.Is(err, api.ErrUpstream) {
			api.HandleError(w, api.ErrUpstream)
			return
		}
		slog.Error("submitting message", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	switch result.Status {
	case StatusBlocked:
		api.JSON(w, http.StatusUnprocessableEntity, result)
	case StatusQuotaExceeded:
		api.JSON(w, http.StatusTooManyRequests, result)
	default:
		api.JSON(w, http.StatusOK, result)
	}
}

// GetQuota returns the client's remaining daily allowance for display.
func (h *Handler) GetQuota(w http.ResponseWriter, r *http.Request) {
	claims := session.GetClaims(r.Context())
	if claims == nil {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	status, err := h.gate.Quota(r.Context(), claims.ClientID)
	if err != nil {
		slog.Error("reading quota", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	api.JSON(w, http.StatusOK, status)
}

// ListAuditLogs returns the client's paginated moderation audit trail.
func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	claims := session.GetClaims(r.Context())
	if claims == nil {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}
	if h.auditRepo == nil {
		api.HandleError(w, api.ErrNotFound)
		return
	}

	params := parseAuditParams(r)

	logs, total, err := h.auditRepo.ListByClient(r.Context(), claims.ClientID, params)
	if err != nil {
		slog.Error("listing audit logs", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	api.JSONPaginated(w, http.StatusOK, logs, int64(total), params.Page, params.PageSize)
}

func parseAuditParams(r *http.Request) audit.ListParams {
	params := audit.DefaultListParams()

	if et := r.URL.Query().Get("event_type"); et != "" {
		params.EventType = et
	}
	if sev := r.URL.Query().Get("severity"); sev != "" {
		params.Severity = sev
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if page, err := strconv.Atoi(p); err == nil && page > 0 {
			params.Page = page
		}
	}
	if ps := r.URL.Query().Get("page_size"); ps != "" {
		if pageSize, err := strconv.Atoi(ps); err == nil && pageSize > 0 && pageSize <= 100 {
			params.PageSize = pageSize
		}
	}
	if from := r.URL.Query().Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			params.From = &t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			params.To = &t
		}
	}

	return params
}
