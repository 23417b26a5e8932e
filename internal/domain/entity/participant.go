package entity

import "time"

// Participant links a person (by email) to an Event. The pair
// (EventID, Email) is unique; the same email may join different events.
// Participants are never mutated, only created by a join and removed when
// their event is deleted.
type Participant struct {
	ID        string
	EventID   string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time

	// Event is a read-only summary of the owning event, populated by list
	// queries.
	Event *EventSummary
}

// EventSummary is the slice of event fields exposed alongside a participant.
type EventSummary struct {
	ID       string
	Name     string
	Date     time.Time
	Location string
}
