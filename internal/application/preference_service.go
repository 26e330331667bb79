package application

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/internal/domain/repository"
	"github.com/oksasatya/foodshare/pkg/apperror"
)

type PreferenceService struct {
	Repo repository.PreferenceRepository
}

func NewPreferenceService(repo repository.PreferenceRepository) *PreferenceService {
	return &PreferenceService{Repo: repo}
}

// Save creates or replaces the user's preferences.
func (s *PreferenceService) Save(ctx context.Context, p *entity.Preferences) error {
	if p.UserID == "" || strings.TrimSpace(p.City) == "" || p.Radius <= 0 || strings.TrimSpace(p.FoodPreference) == "" {
		return apperror.ErrInvalidPrefs
	}
	if _, err := uuid.Parse(p.UserID); err != nil {
		return apperror.ErrInvalidPrefs
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	return s.Repo.Upsert(ctx, p)
}

// Get returns nil when nothing was saved for userID.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*entity.Preferences, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, nil
	}
	return s.Repo.GetByUserID(ctx, userID)
}
