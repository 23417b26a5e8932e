package repository

import (
	"context"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
)

// ParticipantRepository defines the interface for registration persistence.
type ParticipantRepository interface {
	// Join runs the capacity-checked registration as one atomic unit: it
	// locks the event row, applies CheckJoin against the persisted state,
	// and inserts the participant only when every check passes. On failure
	// nothing is written.
	Join(ctx context.Context, eventID string, p *entity.Participant) (*entity.Participant, error)

	// List returns participants newest-first, each with its owning event
	// summary. An empty eventID returns participants across all events.
	List(ctx context.Context, eventID string) ([]entity.Participant, error)

	CountByEvent(ctx context.Context, eventID string) (int, error)
}
