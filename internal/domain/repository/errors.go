package repository

import "errors"

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventFull is returned when an event has no remaining capacity.
var ErrEventFull = errors.New("event is at full capacity")

// ErrAlreadyJoined is returned when an email registers twice for one event.
var ErrAlreadyJoined = errors.New("already joined this event")

// ErrEmailTaken is returned when a user account with the email already exists.
var ErrEmailTaken = errors.New("email already registered")
