package repository

import (
	"context"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

type PreferenceRepository interface {
	Upsert(ctx context.Context, p *entity.Preferences) error
	// GetByUserID returns nil, nil when the user has not saved preferences yet.
	GetByUserID(ctx context.Context, userID string) (*entity.Preferences, error)
}
