package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

// PasswordResetService implements the OTP-based reset flow. Codes live in a
// shared store with an explicit TTL, so any instance can confirm a reset
// requested through another one.
type PasswordResetService struct {
	users  ports.UserRepository
	otps   ports.OTPStore
	mail   ports.MailPublisher
	ttl    time.Duration
	logger zerolog.Logger
}

func NewPasswordResetService(
	users ports.UserRepository,
	otps ports.OTPStore,
	mail ports.MailPublisher,
	ttl time.Duration,
	logger zerolog.Logger,
) *PasswordResetService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &PasswordResetService{users: users, otps: otps, mail: mail, ttl: ttl, logger: logger}
}

// RequestReset stores a fresh OTP for the account and queues the reset
// email. The OTP must be durably stored before the email is published;
// publish failures are logged but do not invalidate the stored code.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrValidation
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("request reset: %w", err)
	}

	if err := s.otps.Set(ctx, email, otp, s.ttl); err != nil {
		return fmt.Errorf("request reset: %w", err)
	}

	msg := domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   user.Email,
		Data: domain.ResetPasswordMailData{
			FullName:      user.FullName,
			OTP:           otp,
			ExpiryMinutes: int(s.ttl.Minutes()),
		},
	}
	if err := s.mail.Publish(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to publish reset email")
		return fmt.Errorf("request reset: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("password reset otp issued")
	return nil
}

// ConfirmReset validates the OTP and replaces the account password. The
// code is consumed on success and cannot be replayed.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, email, otp, newPassword string) error {
	if email == "" || otp == "" || newPassword == "" {
		return domain.ErrValidation
	}

	stored, err := s.otps.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			return domain.ErrInvalidOTP
		}
		return fmt.Errorf("confirm reset: %w", err)
	}
	if stored != otp {
		return domain.ErrInvalidOTP
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("confirm reset: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("confirm reset: %w", err)
	}

	if err := s.otps.Delete(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to consume reset otp")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset confirmed")
	return nil
}

// generateOTP returns a 6-digit zero-padded code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
