package repository

import (
	"context"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
// Create returns apperror.ErrDuplicatePhone when the phone is already taken.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
}
