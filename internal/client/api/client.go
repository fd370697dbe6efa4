// Package api is the typed REST client for the ShelfKeeper backend. It
// speaks the JSON envelope over the authenticated gateway and maps failure
// responses to the shared sentinel errors.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shelfkeeper/shelfkeeper/internal/client/gateway"
	"github.com/shelfkeeper/shelfkeeper/internal/common"
)

// SessionStore persists the credential pair plus the cached user profile.
// gateway.SQLiteStore satisfies it.
type SessionStore interface {
	gateway.TokenStore
	SetProfile(ctx context.Context, profile []byte) error
	Profile(ctx context.Context) ([]byte, error)
}

// Pagination mirrors the page metadata the server attaches to list responses.
type Pagination struct {
	Total       int64 `json:"total"`
	Pages       int64 `json:"pages"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

type Client struct {
	gw      *gateway.Gateway
	session SessionStore
}

func NewClient(gw *gateway.Gateway, session SessionStore) *Client {
	return &Client{gw: gw, session: session}
}

// OnSessionExpired forwards the gateway's terminal-renewal-failure hook.
func (c *Client) OnSessionExpired(hook func()) {
	c.gw.OnSessionExpired(hook)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do sends one API call and decodes the envelope's data field into out.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}

	resp, err := c.gw.Do(ctx, &gateway.Request{Method: method, Path: path, Body: payload})
	if err != nil {
		return mapError(err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return fmt.Errorf("%s: %w", env.Message, common.ErrorInternal)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// mapError translates gateway errors into the shared sentinels, keeping the
// server's message when one is present.
func mapError(err error) error {
	var serverErr *gateway.ServerError
	if errors.As(err, &serverErr) {
		sentinel := common.ErrorInternal
		switch serverErr.Status {
		case http.StatusBadRequest:
			sentinel = common.ErrorValidation
		case http.StatusForbidden:
			sentinel = common.ErrorForbidden
		case http.StatusNotFound:
			sentinel = common.ErrorNotFound
		case http.StatusConflict:
			sentinel = common.ErrorAlreadyExists
		}
		if msg := serverMessage(serverErr.Body); msg != "" {
			return fmt.Errorf("%s: %w", msg, sentinel)
		}
		return sentinel
	}

	var authErr *gateway.AuthorizationError
	if errors.As(err, &authErr) {
		return common.ErrorUnauthorized
	}

	return err
}

func serverMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}
