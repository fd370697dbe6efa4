package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
)

const refreshPath = "/api/auth/refresh"

type outcome struct {
	resp *Response
	err  error
}

// pendingRequest is a caller's 401-failed request waiting for the renewal
// outcome. done is buffered so the drain never blocks on an abandoned waiter.
type pendingRequest struct {
	ctx  context.Context
	req  *Request
	done chan outcome
}

// renewalCoordinator enforces the single-flight renewal invariant. The
// renewing flag and the queue are guarded by one mutex, so the check-and-set
// of Idle to Renewing and the enqueue happen atomically under concurrent
// dispatch.
type renewalCoordinator struct {
	gw *Gateway

	mu       sync.Mutex
	renewing bool
	queue    []*pendingRequest

	onExpired func()
}

func newRenewalCoordinator(gw *Gateway) *renewalCoordinator {
	return &renewalCoordinator{gw: gw}
}

// handle enqueues a 401-failed request and, when the coordinator is idle,
// starts the one renewal flight. It blocks until the request's outcome is
// known or ctx is cancelled; cancellation leaves the shared state untouched.
func (c *renewalCoordinator) handle(ctx context.Context, req *Request) (*Response, error) {
	p := &pendingRequest{ctx: ctx, req: req, done: make(chan outcome, 1)}

	c.mu.Lock()
	first := !c.renewing
	if first {
		c.renewing = true
	}
	c.queue = append(c.queue, p)
	c.mu.Unlock()

	if first {
		// The renewal outlives any single caller.
		go c.renew(context.WithoutCancel(ctx))
	}

	select {
	case out := <-p.done:
		return out.resp, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// renew performs the single renewal call and settles the queue. It is never
// retried: a rejected renewal token cannot succeed on a second attempt.
func (c *renewalCoordinator) renew(ctx context.Context) {
	access, refresh, err := c.renewTokens(ctx)

	if err == nil {
		if refresh != "" {
			err = c.gw.tokens.SetPair(ctx, access, refresh)
		} else {
			err = c.gw.tokens.SetAccess(ctx, access)
		}
	}

	// Back to Idle before any replay; snapshot the queue in arrival order.
	c.mu.Lock()
	c.renewing = false
	pending := c.queue
	c.queue = nil
	c.mu.Unlock()

	if err != nil {
		c.gw.logger.Warn(ctx, "token renewal failed, session expired", "error", err)
		if clearErr := c.gw.tokens.Clear(ctx); clearErr != nil {
			c.gw.logger.Error(ctx, "failed to clear token store", "error", clearErr)
		}
		for _, p := range pending {
			p.done <- outcome{err: ErrAuthenticationExpired}
		}
		if c.onExpired != nil {
			c.onExpired()
		}
		return
	}

	for _, p := range pending {
		p.req.retried = true
		resp, replayErr := c.gw.Do(p.ctx, p.req)
		p.done <- outcome{resp: resp, err: replayErr}
	}
}

// renewTokens issues the renewal call with the stored refresh token as the
// Bearer credential. A missing token fails without touching the network.
func (c *renewalCoordinator) renewTokens(ctx context.Context) (access, refresh string, err error) {
	renewal, err := c.gw.tokens.Renewal(ctx)
	if err != nil {
		return "", "", err
	}
	if renewal == "" {
		return "", "", ErrAuthenticationExpired
	}

	resp, err := c.gw.send(ctx, &Request{Method: http.MethodPost, Path: refreshPath}, renewal)
	if err != nil {
		return "", "", err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return "", "", &ServerError{Status: resp.Status, Body: resp.Body}
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return "", "", err
	}
	if !envelope.Success || envelope.Data.AccessToken == "" {
		return "", "", ErrAuthenticationExpired
	}

	// The server may rotate the refresh token; both response shapes are valid.
	return envelope.Data.AccessToken, envelope.Data.RefreshToken, nil
}
