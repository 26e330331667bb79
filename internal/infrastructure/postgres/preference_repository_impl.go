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

type PreferenceRepository struct {
	db DB
}

func NewPreferenceRepository(db DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) Upsert(ctx context.Context, p *entity.Preferences) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_preferences (user_id, city, radius, food_preference, allergies)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET city = EXCLUDED.city,
		    radius = EXCLUDED.radius,
		    food_preference = EXCLUDED.food_preference,
		    allergies = EXCLUDED.allergies,
		    updated_at = now()
		RETURNING updated_at
	`, p.UserID, p.City, p.Radius, p.FoodPreference, p.Allergies).Scan(&p.UpdatedAt)
	if err != nil {
		return apperror.Persistence(fmt.Errorf("upsert preferences: %w", err))
	}
	return nil
}

func (r *PreferenceRepository) GetByUserID(ctx context.Context, userID string) (*entity.Preferences, error) {
	p := &entity.Preferences{}
	err := r.db.QueryRow(ctx, `
		SELECT user_id, city, radius, food_preference, allergies, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.City, &p.Radius, &p.FoodPreference, &p.Allergies, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Persistence(fmt.Errorf("get preferences: %w", err))
	}
	return p, nil
}

var _ repository.PreferenceRepository = (*PreferenceRepository)(nil)
