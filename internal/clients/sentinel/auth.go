package sentinel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bobmcallan/sentinel/internal/models"
)

const (
	loginEndpoint          = "/api/v1/auth/login/access-token"
	registerEndpoint       = "/api/v1/auth/register"
	meEndpoint             = "/api/v1/auth/me"
	changePasswordEndpoint = "/api/v1/auth/change-password"
)

// Login exchanges credentials for a bearer token. The session is updated
// only after a valid token is decoded. If the token cannot be persisted it
// is still held in memory and the persist error is returned with it.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	body, err := c.do(ctx, http.MethodPost, loginEndpoint, requestOptions{
		body:    strings.NewReader(form.Encode()),
		headers: http.Header{"Content-Type": {"application/x-www-form-urlencoded"}},
		noAuth:  true,
	})
	if err != nil {
		return nil, err
	}

	tok, err := decodeOne[models.Token](loginEndpoint, body)
	if err != nil {
		return nil, err
	}

	if err := c.session.SetToken(tok.AccessToken); err != nil {
		c.logger.Warn().Err(err).Msg("Token held in memory only")
		return &tok, fmt.Errorf("logged in but %w", err)
	}

	c.logger.Info().Str("user", username).Msg("Logged in")
	return &tok, nil
}

// Logout drops the session token.
func (c *Client) Logout() error {
	return c.session.ClearToken()
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return postOne[models.User](ctx, c, registerEndpoint, req)
}

// CurrentUser returns the account the session token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	return getOne[models.User](ctx, c, meEndpoint)
}

// ChangePassword updates the current account's password.
func (c *Client) ChangePassword(ctx context.Context, req models.PasswordChange) error {
	_, err := postOne[models.Message](ctx, c, changePasswordEndpoint, req)
	return err
}
