package ports

import (
	"context"
	"time"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

// OTPStore holds password-reset codes with an explicit expiry. Keys live in
// a shared store, not process memory, so any instance can confirm a reset
// requested through another.
type OTPStore interface {
	Set(ctx context.Context, email, otp string, ttl time.Duration) error
	// Get returns domain.ErrInvalidOTP when no code is stored for the email
	// (never issued, expired, or already consumed).
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// MailPublisher hands a mail message to the email queue for asynchronous
// delivery by the mail worker.
type MailPublisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

// PasswordResetService implements the OTP-based reset flow.
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	ConfirmReset(ctx context.Context, email, otp, newPassword string) error
}
