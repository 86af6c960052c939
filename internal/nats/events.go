package nats

import "time"

// FetchTimeout is the default timeout for batch fetching messages from consumers.
const FetchTimeout = 2 * time.Second

// StreamEvents holds all governance events.
const StreamEvents = "CHATGATE_EVENTS"

// Subject constants.
const (
	SubjectGovernanceEvent = "chatgate.events.governance"
)

// Governance event types.
const (
	EventMessageRejected  = "message.rejected"
	EventQuotaExceeded    = "quota.exceeded"
	EventMessageForwarded = "message.forwarded"
)

// GovernanceEvent is published for every gate decision worth auditing:
// filter rejections, quota denials, and successful forwards.
type GovernanceEvent struct {
	ClientID  string    `json:"client_id"`
	EventType string    `json:"event_type"`
	Severity  string    `json:"severity"` // info, warn, error
	Issues    []string  `json:"issues,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Remaining int       `json:"remaining"`
	Timestamp time.Time `json:"timestamp"`
}
