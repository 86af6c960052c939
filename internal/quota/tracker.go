// Package quota enforces a fixed per-client daily message cap with an
// automatic reset at each local-midnight calendar boundary.
package quota

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"
)

const keyPrefix = "daily_message_limit:"

const lockStripes = 64

// Decision is the outcome of a consume attempt.
type Decision struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

// Tracker performs the check-and-increment against a Store. The read-modify-
// write is serialized per client through striped locks, so two rapid
// submissions from the same client cannot both observe count = max-1.
type Tracker struct {
	store Store
	max   int
	locks [lockStripes]sync.Mutex

	now func() time.Time
}

// NewTracker creates a Tracker enforcing maxPerDay messages per client per
// calendar day.
func NewTracker(store Store, maxPerDay int) *Tracker {
	return &Tracker{
		store: store,
		max:   maxPerDay,
		now:   time.Now,
	}
}

// Max returns the configured daily cap.
func (t *Tracker) Max() int {
	return t.max
}

// CheckAndConsume atomically consumes one quota unit if any remain today.
// Exactly one store write happens when allowed; none when rejected. A failed
// store read counts as "no prior quota" so a broken store resets the counter
// rather than blocking the user.
func (t *Tracker) CheckAndConsume(ctx context.Context, clientID string) (Decision, error) {
	lock := t.lockFor(clientID)
	lock.Lock()
	defer lock.Unlock()

	key := keyPrefix + clientID
	today := t.now().Format(DateLayout)

	rec, err := t.store.Get(ctx, key)
	if err != nil {
		slog.Warn("quota: read failed, treating as fresh day", "client", clientID, "error", err)
		rec = nil
	}

	if rec == nil || rec.Date != today {
		fresh := &DailyQuota{Count: 1, Date: today}
		if err := t.store.Put(ctx, key, fresh, RecordTTL); err != nil {
			return Decision{}, err
		}
		return Decision{Allowed: true, Remaining: t.max - 1}, nil
	}

	if rec.Count < t.max {
		rec.Count++
		if err := t.store.Put(ctx, key, rec, RecordTTL); err != nil {
			return Decision{}, err
		}
		return Decision{Allowed: true, Remaining: t.max - rec.Count}, nil
	}

	return Decision{Allowed: false, Remaining: 0}, nil
}

// PeekRemaining reports how many messages remain today without consuming
// anything. Safe to call repeatedly; causes no writes.
func (t *Tracker) PeekRemaining(ctx context.Context, clientID string) (int, error) {
	key := keyPrefix + clientID
	today := t.now().Format(DateLayout)

	rec, err := t.store.Get(ctx, key)
	if err != nil {
		slog.Warn("quota: read failed, reporting full quota", "client", clientID, "error", err)
		return t.max, nil
	}

	if rec == nil || rec.Date != today {
		return t.max, nil
	}

	remaining := t.max - rec.Count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (t *Tracker) lockFor(clientID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(clientID))
	return &t.locks[h.Sum32()%lockStripes]
}
