// Package gateway implements the authenticated request gateway used by the
// client: it attaches the current access token to outgoing API calls,
// intercepts 401 responses, and collapses concurrent token renewals into a
// single flight while failed requests wait in a FIFO queue for replay.
package gateway

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shelfkeeper/shelfkeeper/internal/logging"
)

const defaultTimeout = 10 * time.Second

// Request describes an outbound API call.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte

	// retried is set before the single replay and prevents a second one.
	retried bool
}

// Response is a successful (non-error status) API reply.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Gateway dispatches requests to the backend API. All client features share
// one Gateway per session so they see the same token store and renewal state.
type Gateway struct {
	baseURL     string
	client      *http.Client
	tokens      TokenStore
	coordinator *renewalCoordinator
	logger      logging.Logger
}

func New(baseURL string, tokens TokenStore, client *http.Client, logger logging.Logger) *Gateway {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
		logger:  logger.With("module", "gateway"),
	}
	g.coordinator = newRenewalCoordinator(g)
	return g
}

// OnSessionExpired registers a hook fired once per failed renewal, after the
// store is cleared. The CLI uses it to drop back to the login prompt.
func (g *Gateway) OnSessionExpired(hook func()) {
	g.coordinator.onExpired = hook
}

// Tokens exposes the gateway's token store to the login/logout entry points.
func (g *Gateway) Tokens() TokenStore {
	return g.tokens
}

// Do issues the request with the current access token attached. A 401 on a
// request not yet replayed is handed to the renewal coordinator; the caller
// transparently receives the replay's outcome. Any other failure maps to the
// error taxonomy and propagates unchanged.
func (g *Gateway) Do(ctx context.Context, req *Request) (*Response, error) {
	access, err := g.tokens.Access(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := g.send(ctx, req, access)
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusUnauthorized {
		if req.retried {
			return nil, &AuthorizationError{Body: resp.Body}
		}
		g.logger.Debug(ctx, "access token rejected, requesting renewal", "path", req.Path)
		return g.coordinator.handle(ctx, req)
	}
	if resp.Status >= 400 {
		return nil, &ServerError{Status: resp.Status, Body: resp.Body}
	}
	return resp, nil
}

// send performs the bare HTTP exchange. The access token may be empty; the
// bootstrap calls (login, register, refresh) carry their own credentials.
func (g *Gateway) send(ctx context.Context, req *Request, access string) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, g.baseURL+req.Path, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if len(req.Body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		httpReq.Header.Set("Authorization", "Bearer "+access)
	}

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return &Response{Status: httpResp.StatusCode, Header: httpResp.Header, Body: respBody}, nil
}
