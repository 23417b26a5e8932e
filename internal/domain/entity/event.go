package entity

import "time"

// Event is an organizer-created activity with a fixed participant capacity.
// ParticipantCount is derived from the participants table, never stored.
type Event struct {
	ID               string
	Name             string
	Date             time.Time
	Location         string
	Description      string
	Capacity         int
	ParticipantCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Remaining returns the number of open slots.
func (e *Event) Remaining() int {
	return e.Capacity - e.ParticipantCount
}

// IsFull reports whether the event has reached its capacity ceiling.
func (e *Event) IsFull() bool {
	return e.ParticipantCount >= e.Capacity
}
