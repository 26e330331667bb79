package application

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/internal/domain/repository"
	"github.com/oksasatya/foodshare/pkg/apperror"
	"github.com/oksasatya/foodshare/pkg/helpers"
)

const (
	// CodeTTL is how long an issued code can be redeemed.
	CodeTTL = 5 * time.Minute
	// codeRetention keeps expired records around long enough to report them as expired.
	codeRetention = 2 * CodeTTL
)

// CodeService issues and verifies one-time phone codes.
type CodeService struct {
	Store      repository.CodeStore
	Dispatcher CodeDispatcher
	Logger     *logrus.Logger

	now     func() time.Time
	genCode func() (string, error)
}

func NewCodeService(store repository.CodeStore, dispatcher CodeDispatcher, logger *logrus.Logger) *CodeService {
	return &CodeService{
		Store:      store,
		Dispatcher: dispatcher,
		Logger:     logger,
		now:        time.Now,
		genCode:    helpers.GenCode,
	}
}

// Issue stores a fresh code for phone, replacing any previous one, and hands it
// to the dispatcher. It never looks at whether an account exists for phone.
func (s *CodeService) Issue(ctx context.Context, phone string) error {
	if phone == "" {
		return apperror.ErrPhoneRequired
	}
	if !helpers.ValidPhone(phone) {
		return apperror.ErrInvalidPhone
	}
	code, err := s.genCode()
	if err != nil {
		return apperror.Persistence(err)
	}
	rec := entity.VerificationRecord{Phone: phone, Code: code, ExpiresAt: s.now().Add(CodeTTL)}
	if err := s.Store.Save(ctx, rec, codeRetention); err != nil {
		return apperror.Persistence(err)
	}

	if s.Dispatcher != nil {
		if err := s.Dispatcher.SendCode(ctx, phone, code); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("phone", helpers.MaskPhone(phone)).Warn("code dispatch failed")
		}
	}
	return nil
}

// Verify redeems code for phone. Checks run in a fixed order: missing record,
// expiry (record purged), mismatch (record kept), then success (record purged).
func (s *CodeService) Verify(ctx context.Context, phone, code string) (entity.VerifiedPhone, error) {
	if phone == "" || code == "" {
		return entity.VerifiedPhone{}, apperror.ErrCodeRequired
	}
	rec, err := s.Store.Get(ctx, phone)
	if err != nil {
		return entity.VerifiedPhone{}, apperror.Persistence(err)
	}
	if rec == nil {
		return entity.VerifiedPhone{}, apperror.ErrCodeNotFound
	}

	now := s.now()
	if rec.Expired(now) {
		if _, err := s.Store.Delete(ctx, phone, rec.Code); err != nil {
			return entity.VerifiedPhone{}, apperror.Persistence(err)
		}
		return entity.VerifiedPhone{}, apperror.ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return entity.VerifiedPhone{}, apperror.ErrCodeMismatch
	}

	removed, err := s.Store.Delete(ctx, phone, rec.Code)
	if err != nil {
		return entity.VerifiedPhone{}, apperror.Persistence(err)
	}
	if !removed {
		// redeemed by another request, or replaced by a newer code
		return entity.VerifiedPhone{}, apperror.ErrCodeNotFound
	}
	return entity.VerifiedPhone{Phone: phone, VerifiedAt: now}, nil
}
