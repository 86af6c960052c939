// Package governance gates user-submitted chat messages: a message must pass
// the content filter and consume one unit of the daily quota before it is
// forwarded to the downstream search service.
package governance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/notebot-labs/chatgate/internal/api"
	"github.com/notebot-labs/chatgate/internal/contentfilter"
	"github.com/notebot-labs/chatgate/internal/metrics"
	cnats "github.com/notebot-labs/chatgate/internal/nats"
	"github.com/notebot-labs/chatgate/internal/quota"
	"github.com/notebot-labs/chatgate/internal/search"
)

// Searcher is the downstream AI search collaborator.
type Searcher interface {
	Search(ctx context.Context, question string) (*search.Result, error)
}

// EventPublisher publishes governance events for audit persistence.
type EventPublisher interface {
	PublishGovernanceEvent(ctx context.Context, event cnats.GovernanceEvent) error
}

// Gate composes the content filter, the quota tracker, and the search client.
// Control flow is fixed: filter first, quota second, search last. An invalid
// message never consumes quota, and an out-of-quota message never reaches the
// network.
type Gate struct {
	filter   *contentfilter.Filter
	tracker  *quota.Tracker
	searcher Searcher
	events   EventPublisher // nil when NATS is not configured
	maxLen   int
}

// NewGate creates a Gate. events may be nil, in which case no audit events
// are published.
func NewGate(filter *contentfilter.Filter, tracker *quota.Tracker, searcher Searcher, events EventPublisher, maxMessageLength int) *Gate {
	return &Gate{
		filter:   filter,
		tracker:  tracker,
		searcher: searcher,
		events:   events,
		maxLen:   maxMessageLength,
	}
}

// Validate runs the content filter only. It consumes no quota and is safe to
// call for live preview.
func (g *Gate) Validate(text string) contentfilter.Result {
	return g.filter.Validate(strings.TrimSpace(text))
}

// Quota reports the remaining daily allowance without consuming anything.
func (g *Gate) Quota(ctx context.Context, clientID string) (*QuotaStatus, error) {
	remaining, err := g.tracker.PeekRemaining(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("peeking quota: %w", err)
	}
	return &QuotaStatus{
		RemainingMessages: remaining,
		DailyLimit:        g.tracker.Max(),
	}, nil
}

// Submit runs the full gate. A consumed quota unit is not refunded if the
// downstream call fails; that request surfaces as api.ErrUpstream.
func (g *Gate) Submit(ctx context.Context, clientID, text string) (*SubmitResult, error) {
	text = strings.TrimSpace(text)

	if utf8.RuneCountInString(text) > g.maxLen {
		res := &SubmitResult{
			Status: StatusBlocked,
			Reason: fmt.Sprintf("Message is too long: maximum %d characters", g.maxLen),
			Issues: []string{IssueMessageTooLong},
		}
		g.recordRejection(ctx, clientID, res)
		return res, nil
	}

	if vr := g.filter.Validate(text); !vr.Valid {
		metrics.MessagesValidatedTotal.WithLabelValues("rejected").Inc()
		for _, issue := range vr.DetectedIssues {
			metrics.ValidationIssuesTotal.WithLabelValues(string(issue)).Inc()
		}
		res := &SubmitResult{
			Status: StatusBlocked,
			Reason: vr.Reason,
			Issues: issueStrings(vr.DetectedIssues),
		}
		g.recordRejection(ctx, clientID, res)
		return res, nil
	}
	metrics.MessagesValidatedTotal.WithLabelValues("accepted").Inc()

	decision, err := g.tracker.CheckAndConsume(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("consuming quota: %w", err)
	}
	if !decision.Allowed {
		metrics.QuotaDenialsTotal.Inc()
		g.publish(ctx, cnats.GovernanceEvent{
			ClientID:  clientID,
			EventType: cnats.EventQuotaExceeded,
			Severity:  "warn",
			Timestamp: time.Now().UTC(),
		})
		return &SubmitResult{Status: StatusQuotaExceeded, Remaining: 0}, nil
	}

	result, err := g.searcher.Search(ctx, text)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		slog.Error("search request failed", "client", clientID, "error", err)
		return nil, fmt.Errorf("%w: %w", api.ErrUpstream, err)
	}
	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()

	g.publish(ctx, cnats.GovernanceEvent{
		ClientID:  clientID,
		EventType: cnats.EventMessageForwarded,
		Severity:  "info",
		Remaining: decision.Remaining,
		Timestamp: time.Now().UTC(),
	})

	return &SubmitResult{
		Status:     StatusOK,
		Reply:      result.Response,
		References: result.References,
		Remaining:  decision.Remaining,
	}, nil
}

func (g *Gate) recordRejection(ctx context.Context, clientID string, res *SubmitResult) {
	g.publish(ctx, cnats.GovernanceEvent{
		ClientID:  clientID,
		EventType: cnats.EventMessageRejected,
		Severity:  "warn",
		Issues:    res.Issues,
		Reason:    res.Reason,
		Timestamp: time.Now().UTC(),
	})
}

func (g *Gate) publish(ctx context.Context, event cnats.GovernanceEvent) {
	if g.events == nil {
		return
	}
	if err := g.events.PublishGovernanceEvent(ctx, event); err != nil {
		slog.Warn("publishing governance event", "event_type", event.EventType, "error", err)
	}
}
