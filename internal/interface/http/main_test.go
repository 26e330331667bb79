package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/foodshare/internal/application"
	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

// asUser stands in for the bearer middleware.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Next()
	}
}

type mockCodes struct{ mock.Mock }

func (m *mockCodes) Issue(ctx context.Context, phone string) error {
	return m.Called(ctx, phone).Error(0)
}

type mockAuth struct{ mock.Mock }

func (m *mockAuth) RegisterUser(ctx context.Context, in application.RegisterInput) (*entity.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockAuth) RegisterDetails(ctx context.Context, in application.RegisterDetailsInput) (*entity.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, in application.LoginInput) (*application.Session, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(*application.Session)
	return s, args.Error(1)
}

func (m *mockAuth) LoginWithCode(ctx context.Context, phone, code string) (*application.Session, error) {
	args := m.Called(ctx, phone, code)
	s, _ := args.Get(0).(*application.Session)
	return s, args.Error(1)
}

func (m *mockAuth) Me(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

type mockFood struct{ mock.Mock }

func (m *mockFood) Give(ctx context.Context, ownerID string, in application.GiveInput, img *application.Image) (*entity.FoodListing, error) {
	args := m.Called(ctx, ownerID, in, img)
	l, _ := args.Get(0).(*entity.FoodListing)
	return l, args.Error(1)
}

func (m *mockFood) Get(ctx context.Context, id int64) (*entity.FoodListing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.FoodListing)
	return l, args.Error(1)
}

func (m *mockFood) Cancel(ctx context.Context, ownerID string, id int64) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *mockFood) Search(ctx context.Context, q string, size int) ([]entity.FoodListing, error) {
	args := m.Called(ctx, q, size)
	items, _ := args.Get(0).([]entity.FoodListing)
	return items, args.Error(1)
}

type mockPrefs struct{ mock.Mock }

func (m *mockPrefs) Save(ctx context.Context, p *entity.Preferences) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPrefs) Get(ctx context.Context, userID string) (*entity.Preferences, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*entity.Preferences)
	return p, args.Error(1)
}
