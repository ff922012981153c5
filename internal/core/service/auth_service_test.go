package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared across the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.UserAccount // keyed by id
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.UserAccount), nextID: 1}
}

func cloneUser(u *domain.UserAccount) *domain.UserAccount {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindForLogin(_ context.Context, role domain.Role, usernameOrEmail string) (*domain.UserAccount, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Active && u.Role == role && (u.Username == usernameOrEmail || u.Email == usernameOrEmail) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindActiveByEmail(_ context.Context, email string) (*domain.UserAccount, error) {
	for _, u := range r.users {
		if u.Active && u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.UserAccount) (*domain.UserAccount, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("u-%d", r.nextID)
	r.nextID++
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type stubProfileRepo struct {
	byEntity map[string]domain.Profile // role:entityID
	byUser   map[string]domain.Profile // role:userID
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{
		byEntity: make(map[string]domain.Profile),
		byUser:   make(map[string]domain.Profile),
	}
}

func (r *stubProfileRepo) add(p domain.Profile, userID string) {
	r.byEntity[p.Role().String()+":"+p.EntityID()] = p
	if userID != "" {
		r.byUser[p.Role().String()+":"+userID] = p
	}
}

func (r *stubProfileRepo) remove(role domain.Role, entityID string) {
	delete(r.byEntity, role.String()+":"+entityID)
}

func (r *stubProfileRepo) FindByUser(_ context.Context, role domain.Role, userID string) (domain.Profile, error) {
	if p, ok := r.byUser[role.String()+":"+userID]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubProfileRepo) FindByEntity(_ context.Context, role domain.Role, entityID string) (domain.Profile, error) {
	if p, ok := r.byEntity[role.String()+":"+entityID]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

// seedAccount registers an account with a bcrypt hash of the given password.
func seedAccount(t *testing.T, repo *stubUserRepo, username, email, password string, role domain.Role, active bool) *domain.UserAccount {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := repo.Create(context.Background(), &domain.UserAccount{
		Username:     username,
		FullName:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	repo.users[u.ID].Active = active
	return u
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuthService_Authenticate_Success(t *testing.T) {
	users := newStubUserRepo()
	profiles := newStubProfileRepo()
	u := seedAccount(t, users, "mgr.alice", "alice@corp.test", "s3cret", domain.RoleManager, true)
	profiles.add(domain.ManagerProfile{ID: "2", Name: "Alice Smith", DepartmentID: "3"}, u.ID)

	svc := NewAuthService(users, profiles, "signing-key", 30*time.Minute)
	token, user, err := svc.Authenticate(context.Background(), domain.RoleManager, "alice@corp.test", "s3cret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user == nil || user.Username != "mgr.alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte("signing-key"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "2" {
		t.Errorf("expected role claim \"2\", got %v", claims["role"])
	}
	if claims["entity_id"] != "2" {
		t.Errorf("expected entity_id claim, got %v", claims["entity_id"])
	}
	if claims["full_name"] != "Alice Smith" {
		t.Errorf("expected full_name claim, got %v", claims["full_name"])
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp claim: %v", err)
	}
	if remaining := time.Until(exp.Time); remaining <= 0 || remaining > 30*time.Minute {
		t.Errorf("unexpected token lifetime: %v", remaining)
	}
}

func TestAuthService_Authenticate_UniformFailures(t *testing.T) {
	users := newStubUserRepo()
	profiles := newStubProfileRepo()
	seedAccount(t, users, "bob", "bob@corp.test", "goodpass", domain.RoleEmployee, true)
	seedAccount(t, users, "carol", "carol@corp.test", "goodpass", domain.RoleEmployee, false)

	svc := NewAuthService(users, profiles, "signing-key", time.Minute)

	cases := []struct {
		name     string
		role     domain.Role
		login    string
		password string
	}{
		{"wrong password", domain.RoleEmployee, "bob", "badpass"},
		{"unknown user", domain.RoleEmployee, "ghost", "goodpass"},
		{"inactive account", domain.RoleEmployee, "carol", "goodpass"},
		{"role mismatch", domain.RoleManager, "bob", "goodpass"},
		{"invalid role id", domain.Role(9), "bob", "goodpass"},
		{"empty password", domain.RoleEmployee, "bob", ""},
	}
	for _, c := range cases {
		if _, _, err := svc.Authenticate(context.Background(), c.role, c.login, c.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", c.name, err)
		}
	}
}

func TestAuthService_Authenticate_NoProfileOmitsEntityClaims(t *testing.T) {
	users := newStubUserRepo()
	profiles := newStubProfileRepo() // no profile provisioned
	seedAccount(t, users, "newhire", "newhire@corp.test", "pass", domain.RoleEmployee, true)

	svc := NewAuthService(users, profiles, "signing-key", time.Minute)
	token, _, err := svc.Authenticate(context.Background(), domain.RoleEmployee, "newhire", "pass")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		return []byte("signing-key"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if _, ok := claims["entity_id"]; ok {
		t.Error("entity_id claim must be omitted when no profile exists")
	}
	if _, ok := claims["full_name"]; ok {
		t.Error("full_name claim must be omitted when no profile exists")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubProfileRepo(), "signing-key", time.Minute)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "", Password: "p", Email: "e@x", Role: domain.RoleClient}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for missing username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "u", Password: "p", Email: "e@x", Role: domain.Role(7)}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubProfileRepo(), "signing-key", time.Minute)

	input := ports.RegisterInput{Username: "dana", FullName: "Dana", Email: "dana@corp.test", Password: "pass", Role: domain.RoleClient}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubProfileRepo(), "signing-key", time.Minute)

	u, err := svc.Register(context.Background(), ports.RegisterInput{Username: "eve", FullName: "Eve", Email: "eve@corp.test", Password: "plaintext", Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if u.PasswordHash == "plaintext" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("plaintext")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}
