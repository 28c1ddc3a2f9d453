package models

import "strings"

// Token is the login payload from /auth/login/access-token.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

func (t Token) Validate() error {
	if strings.TrimSpace(t.AccessToken) == "" {
		return invalid("token", "access_token", "required")
	}
	if t.TokenType != "" && !strings.EqualFold(t.TokenType, "bearer") {
		return invalid("token", "token_type", "unsupported type "+t.TokenType)
	}
	return nil
}
