package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

// CodeDispatcher delivers a freshly issued code to the phone's owner.
type CodeDispatcher interface {
	SendCode(ctx context.Context, phone, code string) error
}

// WelcomeNotifier announces a completed detailed registration.
type WelcomeNotifier interface {
	Welcome(ctx context.Context, u *entity.User) error
}

// CaptchaVerifier checks a human-verification token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// ImageStore holds listing images. The returned ref is opaque.
type ImageStore interface {
	Upload(ctx context.Context, ownerID, filename, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// ListingIndex mirrors listings into a search backend.
type ListingIndex interface {
	Index(ctx context.Context, l *entity.FoodListing) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, size int) ([]entity.FoodListing, error)
}

// SessionIssuer mints session tokens. Satisfied by *helpers.JWTManager.
type SessionIssuer interface {
	Issue(userID string) (string, time.Time, error)
}
