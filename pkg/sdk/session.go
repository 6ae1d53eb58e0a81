package sdk

import (
	"context"
	"net/mail"
	"sync"
)

// Identity is the opaque handle to the signed-in user as reported by the
// identity provider.
type Identity struct {
	Subject     string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Session is a read-only snapshot of the current browser-equivalent
// identity state. Loading is true until the provider's first notification
// lands, possibly resolving to "no identity".
type Session struct {
	Identity *Identity
	Loading  bool
}

// IdentityProvider abstracts the external identity service (sign-in, token
// issuance, federated login). Implementations deliver identity changes
// through the callback registered with Subscribe, in the order they occur.
type IdentityProvider interface {
	// Subscribe registers the single listener for identity notifications
	// and returns a release function that tears the listener down.
	Subscribe(fn func(*Identity)) (release func(), err error)

	SignIn(ctx context.Context, email, password string) error
	SignInWithBrowser(ctx context.Context) error
	CreateAccount(ctx context.Context, email, password, displayName, photoURL string) error
	ResetPassword(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, displayName, photoURL string) error
	SignOut(ctx context.Context) error

	// AccessToken mints a fresh bearer token for the current identity.
	// Callers must not cache the result; the gateway requests one per call.
	AccessToken(ctx context.Context) (string, error)
}

// SessionStore owns the Session. It is the only writer: the provider's
// notification callback replaces the identity, and UpdateProfile patches
// the display fields locally. Everything else holds read access only.
type SessionStore struct {
	provider IdentityProvider

	mu       sync.RWMutex
	identity *Identity
	loading  bool

	subscribeOnce sync.Once
	release       func()
	subErr        error
}

// NewSessionStore creates a store in the initial state: no identity,
// loading until the provider's first notification.
func NewSessionStore(provider IdentityProvider) *SessionStore {
	return &SessionStore{
		provider: provider,
		loading:  true,
	}
}

// Subscribe registers the store with the identity provider. It is
// idempotent; repeated calls never create duplicate listeners.
func (s *SessionStore) Subscribe() error {
	s.subscribeOnce.Do(func() {
		s.release, s.subErr = s.provider.Subscribe(s.onIdentity)
	})
	return s.subErr
}

// Close releases the provider subscription established by Subscribe.
func (s *SessionStore) Close() {
	s.mu.Lock()
	release := s.release
	s.release = nil
	s.mu.Unlock()
	if release != nil {
		release()
	}
}

func (s *SessionStore) onIdentity(id *Identity) {
	s.mu.Lock()
	s.identity = id
	s.loading = false
	s.mu.Unlock()
}

// Session returns the current snapshot.
func (s *SessionStore) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{Identity: s.identity, Loading: s.loading}
}

// SignIn authenticates with email and password. The identity itself
// arrives through the provider notification; the store only flips loading
// on immediately to suppress stale-state flashes. A provider rejection is
// surfaced as InvalidCredentialError with the provider's message verbatim.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) error {
	s.setLoading()
	if err := s.provider.SignIn(ctx, email, password); err != nil {
		s.clearLoading()
		return err
	}
	return nil
}

// SignInWithBrowser runs the provider-controlled federated flow. A
// PopupClosedError means the user aborted; treat it as a report, not a
// failure of the application.
func (s *SessionStore) SignInWithBrowser(ctx context.Context) error {
	s.setLoading()
	if err := s.provider.SignInWithBrowser(ctx); err != nil {
		s.clearLoading()
		return err
	}
	return nil
}

// CreateAccount registers a new account with the provider.
func (s *SessionStore) CreateAccount(ctx context.Context, email, password, displayName, photoURL string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return &InvalidEmailError{Email: email}
	}
	s.setLoading()
	if err := s.provider.CreateAccount(ctx, email, password, displayName, photoURL); err != nil {
		s.clearLoading()
		return err
	}
	return nil
}

// ResetPassword asks the provider to send a reset email. The address is
// validated locally first; whether the provider reveals account existence
// is the provider's policy, passed through untouched.
func (s *SessionStore) ResetPassword(ctx context.Context, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return &InvalidEmailError{Email: email}
	}
	return s.provider.ResetPassword(ctx, email)
}

// UpdateProfile updates the stored identity's display fields with the
// provider, then reflects the change into the local identity. The
// provider's push notification may not fire for profile-only edits, so the
// local patch is applied synchronously on success.
func (s *SessionStore) UpdateProfile(ctx context.Context, displayName, photoURL string) error {
	if err := s.provider.UpdateProfile(ctx, displayName, photoURL); err != nil {
		return err
	}
	s.mu.Lock()
	if s.identity != nil {
		patched := *s.identity
		patched.DisplayName = displayName
		patched.PhotoURL = photoURL
		s.identity = &patched
	}
	s.mu.Unlock()
	return nil
}

// SignOut asks the provider to clear the session. The local identity
// becomes nil once the provider notification fires, not before, so
// teardown paths that still need the identity are not raced.
func (s *SessionStore) SignOut(ctx context.Context) error {
	return s.provider.SignOut(ctx)
}

func (s *SessionStore) setLoading() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *SessionStore) clearLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
