package audit

import (
	"context"
	"sync"
)

// DefaultMemoryLimit is the number of session events MemoryRepo keeps.
const DefaultMemoryLimit = 1000

// MemoryRepo keeps the most recent session events in process memory. Used
// when no database is configured, and in tests. Once full, the oldest event
// is dropped for each new one.
type MemoryRepo struct {
	mu     sync.Mutex
	limit  int
	events []Event
}

func NewMemoryRepo() *MemoryRepo { return NewBoundedMemoryRepo(DefaultMemoryLimit) }

func NewBoundedMemoryRepo(limit int) *MemoryRepo {
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}
	return &MemoryRepo{limit: limit}
}

func (r *MemoryRepo) Append(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == r.limit {
		copy(r.events, r.events[1:])
		r.events = r.events[:len(r.events)-1]
	}
	r.events = append(r.events, e)
	return nil
}

// Events returns the retained events, oldest first.
func (r *MemoryRepo) Events() []Event {
	return r.filter(func(Event) bool { return true })
}

// ByType returns the retained events of one kind, oldest first.
func (r *MemoryRepo) ByType(typ EventType) []Event {
	return r.filter(func(e Event) bool { return e.Type == typ })
}

// ForUser returns the retained events whose actor is userID.
func (r *MemoryRepo) ForUser(userID string) []Event {
	return r.filter(func(e Event) bool { return userID != "" && e.ActorUserID == userID })
}

func (r *MemoryRepo) filter(keep func(Event) bool) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
