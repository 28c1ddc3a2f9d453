package models

import "strings"

// Risk tolerance profiles accepted by the backend.
const (
	RiskConservative = "conservative"
	RiskModerate     = "moderate"
	RiskAggressive   = "aggressive"
)

// User is the authenticated account as returned by /auth/me and /auth/register.
type User struct {
	ID            ID         `json:"id"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	FullName      string     `json:"full_name,omitempty"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	RiskTolerance string     `json:"risk_tolerance,omitempty"`
	IsActive      bool       `json:"is_active"`
	IsAdmin       bool       `json:"is_admin,omitempty"`
	CreatedAt     Timestamp  `json:"created_at"`
	UpdatedAt     Timestamp  `json:"updated_at,omitempty"`
	LastLogin     *Timestamp `json:"last_login,omitempty"`
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return invalid("user", "username", "required")
	}
	switch u.RiskTolerance {
	case "", RiskConservative, RiskModerate, RiskAggressive:
	default:
		return invalid("user", "risk_tolerance", "unknown profile "+u.RiskTolerance)
	}
	return nil
}

// RegisterRequest is the JSON body for /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Validate mirrors the backend's field constraints so obvious mistakes fail
// before a round trip.
func (r RegisterRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return invalid("register", "email", "must be an email address")
	}
	if n := len(r.Username); n < 3 || n > 50 {
		return invalid("register", "username", "must be 3-50 characters")
	}
	if n := len(r.Password); n < 8 || n > 100 {
		return invalid("register", "password", "must be 8-100 characters")
	}
	return nil
}

// PasswordChange is the JSON body for /auth/change-password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (p PasswordChange) Validate() error {
	if p.CurrentPassword == "" {
		return invalid("password_change", "current_password", "required")
	}
	if n := len(p.NewPassword); n < 8 || n > 100 {
		return invalid("password_change", "new_password", "must be 8-100 characters")
	}
	return nil
}

// Message is the generic {"message": "..."} acknowledgement body.
type Message struct {
	Message string `json:"message"`
}

func (m Message) Validate() error { return nil }
