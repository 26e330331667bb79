package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodshare/pkg/helpers"
	"github.com/oksasatya/foodshare/pkg/mailer"
	mailtpl "github.com/oksasatya/foodshare/pkg/mailer/templates"
)

// MailSender is satisfied by *mailer.Mailgun.
type MailSender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// SMSSender delivers a rendered text message to a phone.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, text string) error
}

// LogSMS stands in for an SMS gateway. It records the masked recipient only.
type LogSMS struct {
	Logger *logrus.Logger
}

func (s LogSMS) SendSMS(ctx context.Context, phone, text string) error {
	s.Logger.WithFields(logrus.Fields{"phone": helpers.MaskPhone(phone), "length": len(text)}).Info("sms delivered")
	return nil
}

var (
	// ErrBadJob marks messages that will never succeed and must not be requeued.
	ErrBadJob = errors.New("bad notification job")
)

// Worker renders queued jobs and hands them to the matching channel.
type Worker struct {
	Mail    MailSender
	SMS     SMSSender
	Timeout time.Duration
}

// Handle processes one message body. Errors wrapping ErrBadJob are permanent;
// any other error is a delivery failure worth retrying.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var job mailer.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if job.To == "" {
		return fmt.Errorf("%w: empty recipient", ErrBadJob)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
		}
		subject, text, html = s, t, h
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch job.Channel {
	case mailer.ChannelSMS:
		return w.SMS.SendSMS(c, job.To, text)
	case mailer.ChannelEmail:
		if w.Mail == nil {
			return fmt.Errorf("%w: mail channel not configured", ErrBadJob)
		}
		return w.Mail.Send(c, job.To, subject, text, html)
	default:
		return fmt.Errorf("%w: unknown channel %q", ErrBadJob, job.Channel)
	}
}
