package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/internal/domain/repository"
	"github.com/oksasatya/foodshare/pkg/apperror"
)

type FoodRepository struct {
	db DB
}

func NewFoodRepository(db DB) *FoodRepository {
	return &FoodRepository{db: db}
}

// CreateIfNone relies on food_items_user_id_key: a second insert for the same
// owner returns no row, which is the "already active" signal.
func (r *FoodRepository) CreateIfNone(ctx context.Context, l *entity.FoodListing) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO food_items
			(user_id, item_description, pickup_address, box_option, food_types, ingredients, special_notes, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id, created_at
	`, l.OwnerUserID, l.Description, l.PickupAddress, string(l.BoxOption),
		l.FoodTypes, l.Ingredients, nullIfEmpty(l.Notes), nullIfEmpty(l.ImageRef))

	if err := row.Scan(&l.ID, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.ErrAlreadyActive
		}
		return apperror.Persistence(fmt.Errorf("insert food item: %w", err))
	}
	return nil
}

func (r *FoodRepository) GetByID(ctx context.Context, id int64) (*entity.FoodListing, error) {
	l := &entity.FoodListing{}
	var box string
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, item_description, pickup_address, box_option, food_types, ingredients,
		       COALESCE(special_notes, ''), COALESCE(image_url, ''), created_at
		FROM food_items
		WHERE id = $1
	`, id).Scan(&l.ID, &l.OwnerUserID, &l.Description, &l.PickupAddress, &box,
		&l.FoodTypes, &l.Ingredients, &l.Notes, &l.ImageRef, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, apperror.Persistence(fmt.Errorf("get food item: %w", err))
	}
	l.BoxOption = entity.BoxOption(box)
	return l, nil
}

// DeleteOwned removes the listing only if ownerID owns it.
func (r *FoodRepository) DeleteOwned(ctx context.Context, id int64, ownerID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM food_items WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return apperror.Persistence(fmt.Errorf("delete food item: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrListingNotFound
	}
	return nil
}

var _ repository.FoodRepository = (*FoodRepository)(nil)
