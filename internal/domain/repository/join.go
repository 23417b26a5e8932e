package repository

// CheckJoin decides the outcome of a join attempt from the persisted state
// observed inside the registration transaction. The check order is fixed:
// existence, then duplicate, then capacity. A duplicate attempt against a
// full event is still reported as ErrAlreadyJoined, which is the more
// actionable message for the caller.
//
// Every store implementation (and test fake) must route join attempts
// through this function so the ordering holds everywhere.
func CheckJoin(eventFound bool, capacity, participantCount int, alreadyJoined bool) error {
	if !eventFound {
		return ErrNotFound
	}
	if alreadyJoined {
		return ErrAlreadyJoined
	}
	if participantCount >= capacity {
		return ErrEventFull
	}
	return nil
}
