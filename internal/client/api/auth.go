package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

func (c *Client) Register(ctx context.Context, username, email, password, role string) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.User, nil
}

// Login authenticates and persists the credential pair and profile, making
// the session durable across process restarts.
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	var out struct {
		User         *models.User `json:"user"`
		AccessToken  string       `json:"access_token"`
		RefreshToken string       `json:"refresh_token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}

	if err := c.session.SetPair(ctx, out.AccessToken, out.RefreshToken); err != nil {
		return nil, err
	}
	if profile, err := json.Marshal(out.User); err == nil {
		_ = c.session.SetProfile(ctx, profile)
	}
	return out.User, nil
}

// Logout revokes the refresh token server-side on a best-effort basis and
// always clears the local session.
func (c *Client) Logout(ctx context.Context) error {
	if renewal, err := c.session.Renewal(ctx); err == nil && renewal != "" {
		_ = c.do(ctx, http.MethodPost, "/api/auth/logout", map[string]string{
			"refresh_token": renewal,
		}, nil)
	}
	return c.session.Clear(ctx)
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// CachedProfile returns the locally stored profile, nil when absent.
func (c *Client) CachedProfile(ctx context.Context) (*models.User, error) {
	data, err := c.session.Profile(ctx)
	if err != nil || len(data) == 0 {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]*models.User, error) {
	var out struct {
		Users []*models.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}
