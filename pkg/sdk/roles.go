package sdk

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// RoleResolver answers "what is this user allowed to see" by asking the
// backend for the session identity's role and caching the answer per
// email. It is a no-op while the session is still loading or signed out;
// callers must treat the unresolved state exactly like denial.
type RoleResolver struct {
	store  *SessionStore
	client *Client
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]Role
}

// NewRoleResolver builds a resolver over the session store and a client
// whose requests go through the authenticated gateway.
func NewRoleResolver(store *SessionStore, client *Client) *RoleResolver {
	return &RoleResolver{
		store:  store,
		client: client,
		logger: zap.NewNop(),
		cache:  make(map[string]Role),
	}
}

// SetLogger enables structured debug logging.
func (r *RoleResolver) SetLogger(logger *zap.Logger) {
	r.logger = logger
}

// Resolve returns the caller's role and whether the answer is still
// pending. While the session is loading or signed out the resolver stays
// inactive and reports (RoleUnresolved, false). A lookup failure resolves
// silently to RoleUnresolved and is not cached. A lookup whose session
// email changed mid-flight is discarded: its result never overwrites the
// answer for the new email, and (RoleUnresolved, true) is reported because
// the now-current email still has a lookup outstanding.
func (r *RoleResolver) Resolve(ctx context.Context) (Role, bool) {
	session := r.store.Session()
	if session.Loading || session.Identity == nil || session.Identity.Email == "" {
		return RoleUnresolved, false
	}
	email := session.Identity.Email

	r.mu.Lock()
	if role, ok := r.cache[email]; ok {
		r.mu.Unlock()
		return role, false
	}
	r.mu.Unlock()

	user, err := r.client.GetUser(ctx, email)
	if err != nil {
		r.logger.Debug("role lookup failed", zap.String("email", email), zap.Error(err))
		return RoleUnresolved, false
	}

	// Commit only if the session still belongs to the email we asked
	// about. A stale result for a previous user must never land.
	current := r.store.Session()
	if current.Identity == nil || current.Identity.Email != email {
		return RoleUnresolved, true
	}

	r.mu.Lock()
	r.cache[email] = user.Role
	r.mu.Unlock()
	return user.Role, false
}

// Invalidate drops the cached role for an email, forcing the next Resolve
// to hit the backend. Used after admin-side role mutations.
func (r *RoleResolver) Invalidate(email string) {
	r.mu.Lock()
	delete(r.cache, email)
	r.mu.Unlock()
}
