package application

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil && u.ID == "" {
		u.ID = "11111111-1111-1111-1111-111111111111"
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	args := m.Called(ctx, phone)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

type mockFoodRepo struct{ mock.Mock }

func (m *mockFoodRepo) CreateIfNone(ctx context.Context, l *entity.FoodListing) error {
	args := m.Called(ctx, l)
	if args.Error(0) == nil {
		l.ID = 7
		l.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *mockFoodRepo) GetByID(ctx context.Context, id int64) (*entity.FoodListing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.FoodListing)
	return l, args.Error(1)
}

func (m *mockFoodRepo) DeleteOwned(ctx context.Context, id int64, ownerID string) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

type mockPrefRepo struct{ mock.Mock }

func (m *mockPrefRepo) Upsert(ctx context.Context, p *entity.Preferences) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPrefRepo) GetByUserID(ctx context.Context, userID string) (*entity.Preferences, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*entity.Preferences)
	return p, args.Error(1)
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) SendCode(ctx context.Context, phone, code string) error {
	return m.Called(ctx, phone, code).Error(0)
}

type mockWelcome struct{ mock.Mock }

func (m *mockWelcome) Welcome(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

type mockCaptcha struct{ mock.Mock }

func (m *mockCaptcha) Verify(ctx context.Context, token, remoteIP string) error {
	return m.Called(ctx, token, remoteIP).Error(0)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Issue(userID string) (string, time.Time, error) {
	args := m.Called(userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Verify(ctx context.Context, phone, code string) (entity.VerifiedPhone, error) {
	args := m.Called(ctx, phone, code)
	return args.Get(0).(entity.VerifiedPhone), args.Error(1)
}

type mockImages struct{ mock.Mock }

func (m *mockImages) Upload(ctx context.Context, ownerID, filename, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, ownerID, filename, contentType, r)
	return args.String(0), args.Error(1)
}

func (m *mockImages) Delete(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

type mockIndex struct{ mock.Mock }

func (m *mockIndex) Index(ctx context.Context, l *entity.FoodListing) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockIndex) Remove(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockIndex) Search(ctx context.Context, q string, size int) ([]entity.FoodListing, error) {
	args := m.Called(ctx, q, size)
	items, _ := args.Get(0).([]entity.FoodListing)
	return items, args.Error(1)
}
