package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

// OTPStore keeps password-reset codes in Redis so any API instance can
// confirm a reset requested through another one.
// Key format: otp:reset:<email>
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates an OTPStore wrapping the given Redis client.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

// Set stores the code under the email's key. A second request overwrites the
// previous code and restarts the TTL.
func (s *OTPStore) Set(ctx context.Context, email, otp string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(email), otp, ttl).Err(); err != nil {
		return fmt.Errorf("otp set: %w", err)
	}
	return nil
}

// Get returns the stored code, or domain.ErrInvalidOTP when none exists:
// never issued, expired, or already consumed all look the same to a caller.
func (s *OTPStore) Get(ctx context.Context, email string) (string, error) {
	otp, err := s.client.Get(ctx, s.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidOTP
		}
		return "", fmt.Errorf("otp get: %w", err)
	}
	return otp, nil
}

// Delete consumes the code.
func (s *OTPStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("otp delete: %w", err)
	}
	return nil
}

func (s *OTPStore) key(email string) string {
	return "otp:reset:" + email
}
