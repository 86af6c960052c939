package audit

import (
	"time"

	"github.com/google/uuid"
)

// Log is one persisted gate decision.
type Log struct {
	ID        uuid.UUID `json:"id"`
	ClientID  string    `json:"client_id"`
	EventType string    `json:"event_type"`
	Severity  string    `json:"severity"`
	Issues    []string  `json:"issues,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Remaining int       `json:"remaining"`
	CreatedAt time.Time `json:"created_at"`
}

// ListParams filters and paginates an audit listing.
type ListParams struct {
	EventType string
	Severity  string
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// DefaultListParams returns the first page with a sane page size.
func DefaultListParams() ListParams {
	return ListParams{Page: 1, PageSize: 20}
}
