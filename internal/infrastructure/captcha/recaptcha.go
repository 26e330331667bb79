package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/oksasatya/foodshare/internal/application"
	"github.com/oksasatya/foodshare/pkg/apperror"
)

var verifyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "captcha_verify_total",
		Help: "Captcha verifications by outcome",
	},
	[]string{"outcome"},
)

var (
	_ application.CaptchaVerifier = (*Recaptcha)(nil)
	_ application.CaptchaVerifier = Noop{}
)

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Recaptcha calls Google's siteverify endpoint through a circuit breaker.
type Recaptcha struct {
	secret  string
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[bool]
	log     *logrus.Logger
}

func NewRecaptcha(secret, verifyURL string, log *logrus.Logger) *Recaptcha {
	settings := gobreaker.Settings{
		Name:        "recaptcha",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state change")
		},
	}
	return &Recaptcha{
		secret:  secret,
		url:     verifyURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[bool](settings),
		log:     log,
	}
}

// Verify returns ErrCaptchaFailed when Google rejects the token and
// ErrCaptchaUnavailable when it cannot be asked.
func (r *Recaptcha) Verify(ctx context.Context, token, remoteIP string) error {
	if strings.TrimSpace(token) == "" {
		verifyTotal.WithLabelValues("rejected").Inc()
		return apperror.ErrCaptchaFailed
	}
	ok, err := r.breaker.Execute(func() (bool, error) {
		return r.call(ctx, token, remoteIP)
	})
	if err != nil {
		verifyTotal.WithLabelValues("unavailable").Inc()
		if !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, gobreaker.ErrTooManyRequests) {
			r.log.WithError(err).Warn("captcha verify failed")
		}
		return apperror.Wrap(apperror.ErrCaptchaUnavailable, err)
	}
	if !ok {
		verifyTotal.WithLabelValues("rejected").Inc()
		return apperror.ErrCaptchaFailed
	}
	verifyTotal.WithLabelValues("passed").Inc()
	return nil
}

func (r *Recaptcha) call(ctx context.Context, token, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", r.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("siteverify: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, fmt.Errorf("siteverify status %d", resp.StatusCode)
	}
	var out siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode siteverify: %w", err)
	}
	return out.Success, nil
}

// Noop accepts every token. Only wired in development.
type Noop struct{}

func (Noop) Verify(context.Context, string, string) error { return nil }
