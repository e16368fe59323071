package audit

import "time"

// Event is an immutable, append-only record of a session change.
//
// Invariants:
// - Events are never updated or deleted.
// - Actor fields are best-effort; an anonymous logout has none.
type Event struct {
	ID   string    `json:"id" db:"id"`
	Type EventType `json:"type" db:"type"`

	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorEmail  string `json:"actor_email,omitempty" db:"actor_email"`

	// IPAddress is the client address as resolved by the router.
	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`

	// Landing is the route the user was sent to afterwards.
	Landing string `json:"landing,omitempty" db:"landing"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeLogin    EventType = "login"
	EventTypeRegister EventType = "register"
	EventTypeLogout   EventType = "logout"
)

func (t EventType) valid() bool {
	switch t {
	case EventTypeLogin, EventTypeRegister, EventTypeLogout:
		return true
	default:
		return false
	}
}
