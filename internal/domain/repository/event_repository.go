package repository

import (
	"context"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
)

// EventRepository defines the interface for event persistence.
// List and GetByID populate the derived ParticipantCount.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	List(ctx context.Context) ([]entity.Event, error)
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
	// Delete removes the event's participants and then the event row inside
	// one transaction, so no orphaned participants can remain.
	Delete(ctx context.Context, id string) error
}
