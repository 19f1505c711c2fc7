package audit

import (
	"time"

	"github.com/google/uuid"
)

// DefaultActor is recorded when a write arrives without an actor name.
const DefaultActor = "admin"

// Entry is one write-once change record consumed by the operation log.
type Entry struct {
	ID       string
	LoggedAt time.Time
	Actor    string
	Year     int
	Month    int
	Day      int
	Field    string
	OldValue string
	NewValue string
}

// NewEntry creates a change record with a fresh ID and the current
// timestamp. An empty actor falls back to DefaultActor.
func NewEntry(actor string, year, month, day int, field, oldValue, newValue string) Entry {
	if actor == "" {
		actor = DefaultActor
	}
	return Entry{
		ID:       uuid.New().String(),
		LoggedAt: time.Now(),
		Actor:    actor,
		Year:     year,
		Month:    month,
		Day:      day,
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
	}
}
