package ports

import (
	"context"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

// UserRepository defines the interface for user credential persistence.
type UserRepository interface {
	// FindForLogin retrieves the active account matching role and either
	// username or email. Inactive accounts are never returned.
	FindForLogin(ctx context.Context, role domain.Role, usernameOrEmail string) (*domain.UserAccount, error)
	// FindActiveByEmail retrieves an active account by email, any role.
	FindActiveByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	Create(ctx context.Context, user *domain.UserAccount) (*domain.UserAccount, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// RegisterInput carries the data for provisioning a new account.
type RegisterInput struct {
	Username string
	FullName string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService implements credential verification, token issuance, and
// account provisioning.
type AuthService interface {
	// Authenticate verifies the credentials for the given role and returns a
	// signed bearer token. All failure causes are reported as
	// domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, role domain.Role, usernameOrEmail, password string) (string, *domain.UserAccount, error)
	Register(ctx context.Context, input RegisterInput) (*domain.UserAccount, error)
}
