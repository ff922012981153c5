package handler

import "github.com/workfusion/workforce-system/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type authenticateRequest struct {
	RoleID          int    `json:"role_id"           validate:"required,min=1,max=4"`
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password"          validate:"required"`
}

type registerRequest struct {
	Username string `json:"username"  validate:"required,min=3"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	RoleID   int    `json:"role_id"   validate:"required,min=1,max=4"`
}

type authResponse struct {
	Token string              `json:"token,omitempty"`
	User  *domain.UserAccount `json:"user,omitempty"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	OTP         string `json:"otp"          validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type messageResponse struct {
	Message string `json:"message"`
}
