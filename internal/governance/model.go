package governance

import (
	"github.com/notebot-labs/chatgate/internal/contentfilter"
	"github.com/notebot-labs/chatgate/internal/search"
)

// Status discriminates gate outcomes. None of these are errors: a blocked or
// quota-denied message is a normal, recoverable result.
type Status string

const (
	StatusOK            Status = "ok"
	StatusBlocked       Status = "blocked"
	StatusQuotaExceeded Status = "quota_exceeded"
)

// IssueMessageTooLong supplements the content filter taxonomy for the
// gate-level length cap, which the original UI enforced in the textarea.
const IssueMessageTooLong = "message_too_long"

// SubmitRequest is the payload for message submission and validation.
type SubmitRequest struct {
	Message string `json:"message" validate:"max=4000"`
}

// SubmitResult is the gate's decision for one submission.
type SubmitResult struct {
	Status     Status             `json:"status"`
	Reason     string             `json:"reason,omitempty"`
	Issues     []string           `json:"issues,omitempty"`
	Reply      string             `json:"reply,omitempty"`
	References []search.Reference `json:"references,omitempty"`
	Remaining  int                `json:"remaining_messages"`
}

// QuotaStatus is the display-only quota view.
type QuotaStatus struct {
	RemainingMessages int `json:"remaining_messages"`
	DailyLimit        int `json:"daily_limit"`
}

func issueStrings(issues []contentfilter.Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = string(is)
	}
	return out
}
