package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/infrastructure/config"
	"github.com/workfusion/workforce-system/pkg/logger"
)

// mailEnvelope mirrors domain.MailMessage with the payload left raw, so each
// mail type can decode its own data shape.
type mailEnvelope struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- SMTP client ---
	client, err := mail.NewClient(cfg.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithPort(cfg.SMTP.Port),
		mail.WithUsername(cfg.SMTP.Username),
		mail.WithPassword(cfg.SMTP.Password),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mail client")
	}
	defer client.Close()

	dialCtx, cancelDial := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelDial()
	if err := client.DialWithContext(dialCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mail server")
	}

	// --- RabbitMQ ---
	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open channel")
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"email_queue",
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare queue")
	}

	msgs, err := ch.Consume(
		q.Name,
		"",    // consumer tag assigned by the broker
		false, // manual ack
		false, // exclusive
		false, // noLocal (unsupported by RabbitMQ, must be false)
		false, // noWait
		nil,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start consuming")
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				handleMessage(client, cfg, msg, log)
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Info().Str("queue", q.Name).Msg("mail worker started")
	<-sigChan

	log.Info().Msg("shutting down mail worker")
	cancel()
	wg.Wait()
	log.Info().Msg("mail worker stopped")
}

// handleMessage builds and sends one email. SMTP failures nack-requeue the
// delivery; malformed messages are dropped so they cannot poison the queue.
func handleMessage(client *mail.Client, cfg *config.Config, msg amqp.Delivery, log zerolog.Logger) {
	var envelope mailEnvelope
	if err := json.Unmarshal(msg.Body, &envelope); err != nil {
		log.Error().Err(err).Msg("failed to decode mail message")
		_ = msg.Nack(false, false)
		return
	}

	m := mail.NewMsg()
	if err := m.From(cfg.SMTP.From); err != nil {
		log.Error().Err(err).Msg("failed to set sender")
		_ = msg.Nack(false, false)
		return
	}
	if err := m.To(envelope.To); err != nil {
		log.Error().Err(err).Str("to", envelope.To).Msg("failed to set recipient")
		_ = msg.Nack(false, false)
		return
	}

	switch envelope.Type {
	case domain.MailTypeResetPassword:
		var data domain.ResetPasswordMailData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			log.Error().Err(err).Msg("failed to decode reset password data")
			_ = msg.Nack(false, false)
			return
		}
		m.Subject("Workforce System - Password Reset")
		m.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
			"Hello %s,\n\nYour password reset code is %s. It expires in %d minutes.\n\nIf you did not request a reset, you can ignore this message.\n",
			data.FullName, data.OTP, data.ExpiryMinutes,
		))
	default:
		log.Error().Str("type", envelope.Type).Msg("unsupported mail type")
		_ = msg.Nack(false, false)
		return
	}

	if err := client.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("to", envelope.To).Msg("failed to send email")
		_ = msg.Nack(false, true) // requeue for retry
		return
	}

	_ = msg.Ack(false)
	log.Info().Str("to", envelope.To).Str("type", envelope.Type).Msg("email sent")
}
