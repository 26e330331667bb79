package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

func TestPreferenceRepository_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPreferenceRepository(mock)

	p := &entity.Preferences{UserID: "u-1", City: "Haifa", Radius: 5, FoodPreference: "vegan", Allergies: []string{"nuts"}}
	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO user_preferences").
		WithArgs(p.UserID, p.City, p.Radius, p.FoodPreference, p.Allergies).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	require.NoError(t, repo.Upsert(context.Background(), p))
	assert.Equal(t, now, p.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepository_GetByUserID_Absent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPreferenceRepository(mock)

	mock.ExpectQuery("FROM user_preferences").
		WithArgs("u-2").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByUserID(context.Background(), "u-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}
