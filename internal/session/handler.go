package session

import (
	"log/slog"
	"net/http"

	"github.com/notebot-labs/chatgate/internal/api"
)

// Handler exposes session issuance over HTTP.
type Handler struct {
	mgr *Manager
}

// NewHandler creates a session Handler.
func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

// Create issues a new anonymous session token.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	token, err := h.mgr.Issue()
	if err != nil {
		slog.Error("issuing session token", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	api.JSON(w, http.StatusCreated, token)
}
