package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned by Claims when the session is empty.
var ErrNoToken = errors.New("no token in session")

// Claims are the display fields of a bearer token.
type Claims struct {
	Subject   string
	UserID    string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Expired reports whether the token carries an expiry before now. Tokens
// without one never expire.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Claims decodes the token payload without verifying its signature. The
// result is for display only; nothing here enforces expiry.
func (s *Session) Claims() (*Claims, error) {
	tok := s.Token()
	if tok == "" {
		return nil, ErrNoToken
	}
	return ParseClaims(tok)
}

// ParseClaims decodes an unverified JWT.
func ParseClaims(token string) (*Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("token is not a JWT: %w", err)
	}

	c := &Claims{}
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}

	switch v := mc["user_id"].(type) {
	case string:
		c.UserID = v
	case float64:
		c.UserID = fmt.Sprintf("%.0f", v)
	}

	return c, nil
}
