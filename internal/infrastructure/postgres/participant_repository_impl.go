package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
	"github.com/adiwinata/eventdesk/internal/domain/repository"
)

type ParticipantRepository struct {
	pool *pgxpool.Pool
}

func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

// Join registers a participant as one atomic unit.
//
// Two concurrent joins for the last slot must not both pass the capacity
// check, so the event row is locked with SELECT ... FOR UPDATE before the
// checks run. Any concurrent Join on the same event blocks on that lock
// until this transaction commits or rolls back; joins for different events
// do not contend. The UNIQUE(event_id, email) constraint backstops the
// duplicate check: a racing duplicate insert fails with 23505 and is
// re-mapped to ErrAlreadyJoined rather than surfacing as an internal error.
func (r *ParticipantRepository) Join(ctx context.Context, eventID string, p *entity.Participant) (*entity.Participant, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	eventFound := true
	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID,
	).Scan(&capacity)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lock event row: %w", err)
		}
		eventFound = false
		err = nil
	}

	var alreadyJoined bool
	var count int
	if eventFound {
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM participants WHERE event_id = $1 AND email = $2)`,
			eventID, p.Email,
		).Scan(&alreadyJoined)
		if err != nil {
			return nil, fmt.Errorf("check duplicate: %w", err)
		}
		err = tx.QueryRow(ctx,
			`SELECT count(*) FROM participants WHERE event_id = $1`, eventID,
		).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("count participants: %w", err)
		}
	}

	if err = repository.CheckJoin(eventFound, capacity, count, alreadyJoined); err != nil {
		return nil, err
	}

	created := &entity.Participant{
		ID:      uuid.New().String(),
		EventID: eventID,
		Name:    p.Name,
		Email:   p.Email,
		Role:    p.Role,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO participants (id, event_id, name, email, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, created.ID, created.EventID, created.Name, created.Email, created.Role).
		Scan(&created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			err = repository.ErrAlreadyJoined
			return nil, err
		}
		return nil, fmt.Errorf("insert participant: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return created, nil
}

func (r *ParticipantRepository) List(ctx context.Context, eventID string) ([]entity.Participant, error) {
	query := `
		SELECT p.id, p.event_id, p.name, p.email, p.role, p.created_at,
		       e.id, e.name, e.date, e.location
		FROM participants p
		JOIN events e ON e.id = p.event_id`
	args := []any{}
	if eventID != "" {
		query += ` WHERE p.event_id = $1`
		args = append(args, eventID)
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	participants := make([]entity.Participant, 0)
	for rows.Next() {
		var p entity.Participant
		var ev entity.EventSummary
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Email, &p.Role, &p.CreatedAt,
			&ev.ID, &ev.Name, &ev.Date, &ev.Location); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		p.Event = &ev
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *ParticipantRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM participants WHERE event_id = $1`, eventID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}

var _ repository.ParticipantRepository = (*ParticipantRepository)(nil)
