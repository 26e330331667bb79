package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oksasatya/foodshare/pkg/apperror"
)

// Minimum time a human needs between form load and submit.
const (
	RegisterFloor        = 3 * time.Second
	RegisterDetailsFloor = 3 * time.Second
	LoginFloor           = 2 * time.Second
)

// ErrDiscarded marks a submission that tripped the honeypot. Callers answer it
// with an ordinary success so the bot learns nothing.
var ErrDiscarded = errors.New("submission discarded")

// GuardInput carries the anti-automation fields of a public form.
// FormLoadedTime is epoch milliseconds; zero means the client did not send one.
type GuardInput struct {
	HoneypotField  string
	CaptchaToken   string
	FormLoadedTime int64
	RemoteIP       string
}

// Guard screens public forms: honeypot, then captcha, then submit timing.
type Guard struct {
	Captcha CaptchaVerifier
	now     func() time.Time
}

func NewGuard(captcha CaptchaVerifier) *Guard {
	return &Guard{Captcha: captcha, now: time.Now}
}

func (g *Guard) Check(ctx context.Context, in GuardInput, floor time.Duration) error {
	if strings.TrimSpace(in.HoneypotField) != "" {
		return ErrDiscarded
	}
	if g.Captcha != nil {
		if err := g.Captcha.Verify(ctx, in.CaptchaToken, in.RemoteIP); err != nil {
			if apperror.As(err) == nil {
				return apperror.Wrap(apperror.ErrCaptchaUnavailable, err)
			}
			return err
		}
	}
	if in.FormLoadedTime > 0 {
		elapsed := g.now().Sub(time.UnixMilli(in.FormLoadedTime))
		if elapsed < floor {
			return apperror.ErrTooFast
		}
	}
	return nil
}
