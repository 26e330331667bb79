package repository

import (
	"context"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

// FoodRepository persists food listings.
//
// CreateIfNone inserts the listing only when the owner has none; it returns
// apperror.ErrAlreadyActive otherwise. The check and the insert are a single
// statement backed by a unique constraint on the owner.
type FoodRepository interface {
	CreateIfNone(ctx context.Context, l *entity.FoodListing) error
	GetByID(ctx context.Context, id int64) (*entity.FoodListing, error)
	DeleteOwned(ctx context.Context, id int64, ownerID string) error
}
