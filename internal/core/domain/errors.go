package domain

import "errors"

// Authentication and account errors. Bad password, unknown user, inactive
// account and role mismatch are all reported as ErrInvalidCredentials so
// that login responses cannot be used for account enumeration.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrProfileNotFound    = errors.New("role profile not found")
)

// Leave workflow errors. ErrLeaveNotFound covers both a genuinely unknown id
// and a lost decision race: by the time the conditional update ran the
// request was no longer pending, and the caller cannot distinguish the two.
var (
	ErrLeaveNotFound  = errors.New("leave request not found or already processed")
	ErrForbiddenScope = errors.New("outside the caller's authorized scope")
	ErrValidation     = errors.New("validation failed")
)

// Password reset errors.
var (
	ErrInvalidOTP = errors.New("invalid or expired otp")
)

// Notification errors.
var (
	ErrNotificationNotFound = errors.New("notification not found")
)
