package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
	"github.com/adiwinata/eventdesk/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// eventSelect joins the derived participant count into every read.
const eventSelect = `
	SELECT e.id, e.name, e.date, e.location, e.description, e.capacity,
	       count(p.id) AS participant_count, e.created_at, e.updated_at
	FROM events e
	LEFT JOIN participants p ON p.event_id = e.id`

const eventGroup = ` GROUP BY e.id`

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (id, name, date, location, description, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, e.ID, e.Name, e.Date, e.Location, e.Description, e.Capacity)

	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	e.ParticipantCount = 0
	return nil
}

func (r *EventRepository) List(ctx context.Context) ([]entity.Event, error) {
	rows, err := r.pool.Query(ctx, eventSelect+eventGroup+` ORDER BY e.date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]entity.Event, 0)
	for rows.Next() {
		var e entity.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Description,
			&e.Capacity, &e.ParticipantCount, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var e entity.Event
	err := r.pool.QueryRow(ctx, eventSelect+` WHERE e.id = $1`+eventGroup, id).
		Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Description,
			&e.Capacity, &e.ParticipantCount, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	e.UpdatedAt = time.Now().UTC()
	res, err := r.pool.Exec(ctx, `
		UPDATE events
		SET name = $1, date = $2, location = $3, description = $4, capacity = $5, updated_at = $6
		WHERE id = $7
	`, e.Name, e.Date, e.Location, e.Description, e.Capacity, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the event's participants and then the event row inside a
// single transaction. The schema has no ON DELETE CASCADE; the two-step
// delete keeps referential integrity explicit.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM participants WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete participants: %w", err)
	}

	res, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.RowsAffected() == 0 {
		err = repository.ErrNotFound
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
