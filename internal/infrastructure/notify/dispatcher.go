package notify

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/pkg/helpers"
	"github.com/oksasatya/foodshare/pkg/mailer"
	mailtpl "github.com/oksasatya/foodshare/pkg/mailer/templates"
)

// Publisher is satisfied by *helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueDispatcher hands notifications to the worker through RabbitMQ.
type QueueDispatcher struct {
	pub     Publisher
	appName string
}

func NewQueueDispatcher(pub Publisher, appName string) *QueueDispatcher {
	return &QueueDispatcher{pub: pub, appName: appName}
}

func (d *QueueDispatcher) SendCode(ctx context.Context, phone, code string) error {
	job := mailer.Job{
		Channel:  mailer.ChannelSMS,
		To:       phone,
		Template: mailtpl.LoginCode,
		Data:     mailtpl.ToMap(mailtpl.Data{AppName: d.appName, Code: code}),
	}
	if err := d.pub.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("publish sms job: %w", err)
	}
	return nil
}

// Welcome enqueues the welcome email. Users without an email are skipped.
func (d *QueueDispatcher) Welcome(ctx context.Context, u *entity.User) error {
	if u.Email == "" {
		return nil
	}
	job := mailer.Job{
		Channel:  mailer.ChannelEmail,
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.ToMap(mailtpl.Data{Name: u.Name, Username: u.Username, Email: u.Email, AppName: d.appName}),
	}
	if err := d.pub.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("publish email job: %w", err)
	}
	return nil
}

// LogDispatcher only records that a notification would have been sent.
// The code itself is never logged.
type LogDispatcher struct {
	logger *logrus.Logger
}

func NewLogDispatcher(logger *logrus.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) SendCode(ctx context.Context, phone, code string) error {
	d.logger.WithField("phone", helpers.MaskPhone(phone)).Info("verification code issued")
	return nil
}

func (d *LogDispatcher) Welcome(ctx context.Context, u *entity.User) error {
	d.logger.WithField("user_id", u.ID).Debug("welcome notification skipped")
	return nil
}
