package sdk

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Doer abstracts the HTTP executor used by the REST client. *http.Client
// and *Gateway both satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Gateway centralizes outbound backend calls: every request of a signed-in
// session carries a freshly minted bearer token, and every 401/403 answer
// triggers the same recovery action (forced sign-out plus the redirect
// hook) before the error is handed back to the caller.
type Gateway struct {
	base     Doer
	store    *SessionStore
	provider IdentityProvider
	logger   *zap.Logger

	// onAuthFailure is the application's "redirect to sign-in" action. It
	// runs as a side effect layered on top of normal error propagation.
	onAuthFailure func()
}

// GatewayOption mutates Gateway construction.
type GatewayOption func(*Gateway)

// WithBaseClient overrides the underlying HTTP client.
func WithBaseClient(base Doer) GatewayOption {
	return func(g *Gateway) { g.base = base }
}

// WithAuthFailureHook installs the action run after a 401/403 recovery.
func WithAuthFailureHook(fn func()) GatewayOption {
	return func(g *Gateway) { g.onAuthFailure = fn }
}

// WithGatewayLogger enables structured debug logging.
func WithGatewayLogger(logger *zap.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = logger }
}

// NewGateway builds a gateway bound to the session store and its provider.
func NewGateway(store *SessionStore, provider IdentityProvider, optFns ...GatewayOption) *Gateway {
	g := &Gateway{
		base:     http.DefaultClient,
		store:    store,
		provider: provider,
		logger:   zap.NewNop(),
	}
	for _, fn := range optFns {
		fn(g)
	}
	return g
}

// Do sends the request. A fresh token is requested from the provider per
// call, strictly before dispatch; the request goes out anonymous when no
// identity is present. 401/403 responses are converted into
// AuthorizationError after the recovery side effects ran. The request is
// never retried automatically.
func (g *Gateway) Do(req *http.Request) (*http.Response, error) {
	if session := g.store.Session(); session.Identity != nil {
		token, err := g.provider.AccessToken(req.Context())
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.base.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		g.recover(req.Context(), resp.StatusCode)
		return nil, &AuthorizationError{StatusCode: resp.StatusCode}
	}

	return resp, nil
}

func (g *Gateway) recover(ctx context.Context, status int) {
	g.logger.Debug("authorization failure, forcing sign-out", zap.Int("status", status))
	if err := g.store.SignOut(ctx); err != nil {
		g.logger.Warn("forced sign-out failed", zap.Error(err))
	}
	if g.onAuthFailure != nil {
		g.onAuthFailure()
	}
}
