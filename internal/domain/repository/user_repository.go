package repository

import (
	"context"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdateRole(ctx context.Context, id, role2 string) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
