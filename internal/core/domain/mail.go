package domain

// MailMessage is the envelope published to the email queue and consumed by
// the mail worker.
type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

// MailTypeResetPassword is the only mail type currently produced by the API.
const MailTypeResetPassword = "reset_password"

// ResetPasswordMailData is the payload for a password-reset OTP email.
type ResetPasswordMailData struct {
	FullName      string `json:"full_name"`
	OTP           string `json:"otp"`
	ExpiryMinutes int    `json:"expiry_minutes"`
}
