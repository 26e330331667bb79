package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodshare/config"
	"github.com/oksasatya/foodshare/internal/infrastructure/notify"
	"github.com/oksasatya/foodshare/pkg/helpers"
	"github.com/oksasatya/foodshare/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notify", cfg.Env, cfg.LogLevel)

	if !cfg.NotifyEnabled {
		logger.Info("NOTIFY_ENABLED=false; notification worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotifyQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	w := &notify.Worker{SMS: notify.LogSMS{Logger: logger}}
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
		w.Mail = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender).WithAPIBase(cfg.MailgunAPIBase)
	} else {
		logger.Warn("Mailgun not configured; email jobs will be dropped")
	}

	// prefetch 16 for fair dispatch across workers
	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQNotifyQueue, 16)
	if err != nil {
		log.Fatalf("rabbitmq consumer: %v", err)
	}
	defer consumer.Close()

	ctx := context.Background()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range consumer.Deliveries {
			err := w.Handle(ctx, msg.Body)
			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, notify.ErrBadJob):
				helpers.LogError(logger, "dropping notification", err, nil)
				_ = msg.Nack(false, false)
			default:
				// redelivered messages are not retried forever
				helpers.LogError(logger, "notification delivery failed", err, logrus.Fields{"redelivered": msg.Redelivered})
				_ = msg.Nack(false, !msg.Redelivered)
			}
		}
		close(done)
	}()

	helpers.LogInfo(logger, "notification worker listening", logrus.Fields{"queue": cfg.RabbitMQNotifyQueue})
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
