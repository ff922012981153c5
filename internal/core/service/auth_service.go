package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

// AuthService implements credential verification and token issuance.
type AuthService struct {
	users     ports.UserRepository
	profiles  ports.ProfileRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, profiles ports.ProfileRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &AuthService{users: users, profiles: profiles, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Authenticate verifies the credentials and mints a bearer token. Unknown
// user, wrong password, inactive account and role mismatch all surface as
// the same ErrInvalidCredentials so responses cannot enumerate accounts.
// Verification is side-effect free and safe to retry.
func (s *AuthService) Authenticate(ctx context.Context, role domain.Role, usernameOrEmail, password string) (string, *domain.UserAccount, error) {
	if !role.Valid() || usernameOrEmail == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindForLogin(ctx, role, usernameOrEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	// A freshly registered account may not have a profile provisioned yet;
	// the token is still issued without entity claims, and entity-scoped
	// calls then fail authorization downstream instead of at login.
	var profile domain.Profile
	if p, err := s.profiles.FindByUser(ctx, role, user.ID); err == nil {
		profile = p
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return "", nil, err
	}

	token, err := s.generateToken(user, profile)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Register provisions a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.UserAccount, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" || !input.Role.Valid() {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.UserAccount{
		Username:     input.Username,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	return s.users.Create(ctx, user)
}

func (s *AuthService) generateToken(user *domain.UserAccount, profile domain.Profile) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role.String(),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	if profile != nil {
		claims["entity_id"] = profile.EntityID()
		claims["full_name"] = profile.FullName()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
