package application

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/internal/domain/repository"
	"github.com/oksasatya/foodshare/pkg/apperror"
	"github.com/oksasatya/foodshare/pkg/helpers"
)

// PhoneVerifier redeems a one-time code. Satisfied by *CodeService.
type PhoneVerifier interface {
	Verify(ctx context.Context, phone, code string) (entity.VerifiedPhone, error)
}

// AuthService orchestrates registration and both login flows.
type AuthService struct {
	Users    repository.UserRepository
	Codes    PhoneVerifier
	Sessions SessionIssuer
	Guard    *Guard
	Welcome  WelcomeNotifier
	Logger   *logrus.Logger
}

func NewAuthService(users repository.UserRepository, codes PhoneVerifier, sessions SessionIssuer, guard *Guard, welcome WelcomeNotifier, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:    users,
		Codes:    codes,
		Sessions: sessions,
		Guard:    guard,
		Welcome:  welcome,
		Logger:   logger,
	}
}

type RegisterInput struct {
	Username string
	Phone    string
	Password string
	Guard    GuardInput
}

type RegisterDetailsInput struct {
	Name     string
	Username string
	Email    string
	Gender   string
	Password string
	Phone    string
	Guard    GuardInput
}

type LoginInput struct {
	Phone    string
	Password string
	Guard    GuardInput
}

// Session is what a successful login hands back to the client.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := s.Guard.Check(ctx, in.Guard, RegisterFloor); err != nil {
		return nil, err
	}
	if in.Username == "" || in.Phone == "" || in.Password == "" {
		return nil, apperror.ErrMissingFields
	}
	if !helpers.ValidPhone(in.Phone) {
		return nil, apperror.ErrInvalidPhone
	}
	if !helpers.StrongPassword(in.Password) {
		return nil, apperror.ErrWeakPassword
	}
	return s.create(ctx, &entity.User{Username: in.Username, Phone: in.Phone}, in.Password)
}

// RegisterDetails creates a full profile and queues the welcome email.
func (s *AuthService) RegisterDetails(ctx context.Context, in RegisterDetailsInput) (*entity.User, error) {
	if err := s.Guard.Check(ctx, in.Guard, RegisterDetailsFloor); err != nil {
		return nil, err
	}
	if in.Name == "" || in.Username == "" || in.Email == "" || in.Gender == "" || in.Password == "" || in.Phone == "" {
		return nil, apperror.ErrMissingFields
	}
	if !helpers.StrongPassword(in.Password) {
		return nil, apperror.ErrWeakPassword
	}
	if !helpers.ValidPhone(in.Phone) {
		return nil, apperror.ErrInvalidPhone
	}
	if !validEmail(in.Email) {
		return nil, apperror.ErrInvalidEmail
	}
	u, err := s.create(ctx, &entity.User{
		Username: in.Username,
		Phone:    in.Phone,
		Name:     in.Name,
		Email:    in.Email,
		Gender:   in.Gender,
	}, in.Password)
	if err != nil {
		return nil, err
	}
	if s.Welcome != nil {
		if wErr := s.Welcome.Welcome(ctx, u); wErr != nil && s.Logger != nil {
			s.Logger.WithError(wErr).WithField("user_id", u.ID).Warn("welcome notification failed")
		}
	}
	return u, nil
}

func (s *AuthService) create(ctx context.Context, u *entity.User, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	u.Password = hash
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return u, nil
}

// Login checks phone and password. Unknown phone and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := s.Guard.Check(ctx, in.Guard, LoginFloor); err != nil {
		return nil, err
	}
	if in.Phone == "" || in.Password == "" {
		return nil, apperror.ErrLoginFields
	}
	u, err := s.Users.GetByPhone(ctx, in.Phone)
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			helpers.BurnPasswordCheck(in.Password)
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, in.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	return s.issue(u)
}

// LoginWithCode exchanges a verified phone for a session.
func (s *AuthService) LoginWithCode(ctx context.Context, phone, code string) (*Session, error) {
	vp, err := s.Codes.Verify(ctx, phone, code)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByPhone(ctx, vp.Phone)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*Session, error) {
	token, exp, err := s.Sessions.Issue(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue session token failed")
		}
		return nil, apperror.Persistence(err)
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	return s.Users.GetByID(ctx, userID)
}

var validate = validator.New()

func validEmail(addr string) bool {
	return validate.Var(addr, "required,email") == nil
}
