package sdk_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

// fakeProvider is a scriptable IdentityProvider for session, gateway, and
// resolver tests.
type fakeProvider struct {
	mu             sync.Mutex
	listener       func(*sdk.Identity)
	subscribeCalls int
	tokenCalls     int
	signOutCalls   int

	initial     *sdk.Identity
	signInErr   error
	tokenErr    error
	deferSignOut bool
}

func (f *fakeProvider) Subscribe(fn func(*sdk.Identity)) (func(), error) {
	f.mu.Lock()
	f.subscribeCalls++
	f.listener = fn
	initial := f.initial
	f.mu.Unlock()

	fn(initial)
	return func() {
		f.mu.Lock()
		f.listener = nil
		f.mu.Unlock()
	}, nil
}

func (f *fakeProvider) emit(id *sdk.Identity) {
	f.mu.Lock()
	listener := f.listener
	f.mu.Unlock()
	if listener != nil {
		listener(id)
	}
}

func (f *fakeProvider) SignIn(_ context.Context, email, _ string) error {
	if f.signInErr != nil {
		return f.signInErr
	}
	f.emit(&sdk.Identity{Subject: email, Email: email})
	return nil
}

func (f *fakeProvider) SignInWithBrowser(context.Context) error {
	if f.signInErr != nil {
		return f.signInErr
	}
	f.emit(&sdk.Identity{Subject: "browser-user", Email: "browser@example.com"})
	return nil
}

func (f *fakeProvider) CreateAccount(_ context.Context, email, _, displayName, photoURL string) error {
	f.emit(&sdk.Identity{Subject: email, Email: email, DisplayName: displayName, PhotoURL: photoURL})
	return nil
}

func (f *fakeProvider) ResetPassword(context.Context, string) error { return nil }

func (f *fakeProvider) UpdateProfile(context.Context, string, string) error { return nil }

func (f *fakeProvider) SignOut(context.Context) error {
	f.mu.Lock()
	f.signOutCalls++
	deferred := f.deferSignOut
	f.mu.Unlock()
	if !deferred {
		f.emit(nil)
	}
	return nil
}

func (f *fakeProvider) AccessToken(context.Context) (string, error) {
	f.mu.Lock()
	f.tokenCalls++
	n := f.tokenCalls
	err := f.tokenErr
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("token-%d", n), nil
}

func (f *fakeProvider) counts() (subscribes, tokens, signOuts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribeCalls, f.tokenCalls, f.signOutCalls
}

// signedInStore builds a subscribed session store whose provider already
// resolved to the given identity.
func signedInStore(provider *fakeProvider, identity *sdk.Identity) *sdk.SessionStore {
	provider.initial = identity
	store := sdk.NewSessionStore(provider)
	if err := store.Subscribe(); err != nil {
		panic(err)
	}
	return store
}
