package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, role domain.Role, usernameOrEmail, password string) (string, *domain.UserAccount, error)
	registerFn     func(ctx context.Context, input ports.RegisterInput) (*domain.UserAccount, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, role domain.Role, usernameOrEmail, password string) (string, *domain.UserAccount, error) {
	return s.authenticateFn(ctx, role, usernameOrEmail, password)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.UserAccount, error) {
	return s.registerFn(ctx, input)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Authenticate_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, role domain.Role, usernameOrEmail, password string) (string, *domain.UserAccount, error) {
			if role != domain.RoleManager || usernameOrEmail != "alice@corp.test" || password != "secret" {
				t.Fatalf("unexpected args: %v %s", role, usernameOrEmail)
			}
			return "token123", &domain.UserAccount{Username: "alice", Role: domain.RoleManager}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"role_id":2,"username_or_email":"alice@corp.test","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/authenticate", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Authenticate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Authenticate_InvalidRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, role domain.Role, usernameOrEmail, password string) (string, *domain.UserAccount, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"role_id":9,"username_or_email":"alice","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/authenticate", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Authenticate(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Authenticate_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, role domain.Role, usernameOrEmail, password string) (string, *domain.UserAccount, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"role_id":3,"username_or_email":"bob","password":"bad"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/authenticate", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Authenticate(c)
	if err == nil {
		t.Fatal("expected error")
	}
	// The central error handler maps this to 401; the handler must pass the
	// sentinel through untouched.
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.UserAccount, error) {
			if input.Username != "dana" || input.Role != domain.RoleClient {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.UserAccount{ID: "u-1", Username: input.Username, Role: input.Role}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"dana","full_name":"Dana","email":"dana@corp.test","password":"longenough","role_id":4}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.UserAccount, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"dana","full_name":"Dana","email":"dana@corp.test","password":"short","role_id":4}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.UserAccount, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
