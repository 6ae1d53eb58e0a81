package sdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

// roleBackend serves GET /users/{email} with a fixed role per email and
// counts lookups. Emails in blocked wait for release before answering.
type roleBackend struct {
	mu      sync.Mutex
	roles   map[string]string
	hits    map[string]int
	started map[string]chan struct{}
	release map[string]chan struct{}
}

func newRoleBackend(roles map[string]string) *roleBackend {
	return &roleBackend{
		roles:   roles,
		hits:    make(map[string]int),
		started: make(map[string]chan struct{}),
		release: make(map[string]chan struct{}),
	}
}

func (b *roleBackend) block(email string) (started, release chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	started = make(chan struct{})
	release = make(chan struct{})
	b.started[email] = started
	b.release[email] = release
	return started, release
}

func (b *roleBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimPrefix(r.URL.Path, "/users/")

	b.mu.Lock()
	b.hits[email]++
	started := b.started[email]
	release := b.release[email]
	role, ok := b.roles[email]
	b.mu.Unlock()

	if started != nil {
		close(started)
		b.mu.Lock()
		b.started[email] = nil
		b.mu.Unlock()
	}
	if release != nil {
		<-release
	}

	if !ok {
		http.Error(w, `{"message":"user not found"}`, http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"email": email, "role": role})
}

func (b *roleBackend) hitCount(email string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[email]
}

func newResolver(t *testing.T, backend *roleBackend, provider *fakeProvider, store *sdk.SessionStore) *sdk.RoleResolver {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	gateway := sdk.NewGateway(store, provider)
	client := sdk.NewClient(server.URL, sdk.WithGateway(gateway))
	return sdk.NewRoleResolver(store, client)
}

func TestRoleResolver_InactiveWhileLoading(t *testing.T) {
	backend := newRoleBackend(map[string]string{"a@b.com": "staff"})
	provider := &fakeProvider{}
	store := sdk.NewSessionStore(provider) // never subscribed: still loading
	resolver := newResolver(t, backend, provider, store)

	role, loading := resolver.Resolve(context.Background())
	if role != sdk.RoleUnresolved || loading {
		t.Fatalf("expected (unresolved, false) while loading, got (%v, %v)", role, loading)
	}
	if backend.hitCount("a@b.com") != 0 {
		t.Fatal("no lookup may be attempted while the session is loading")
	}
}

func TestRoleResolver_InactiveWithoutIdentity(t *testing.T) {
	backend := newRoleBackend(nil)
	provider := &fakeProvider{}
	store := sdk.NewSessionStore(provider)
	if err := store.Subscribe(); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	resolver := newResolver(t, backend, provider, store)

	role, loading := resolver.Resolve(context.Background())
	if role != sdk.RoleUnresolved || loading {
		t.Fatalf("expected (unresolved, false) when signed out, got (%v, %v)", role, loading)
	}
}

func TestRoleResolver_ResolvesAndCachesPerEmail(t *testing.T) {
	backend := newRoleBackend(map[string]string{"a@b.com": "staff"})
	provider := &fakeProvider{}
	store := signedInStore(provider, &sdk.Identity{Subject: "u1", Email: "a@b.com"})
	resolver := newResolver(t, backend, provider, store)

	for i := 0; i < 3; i++ {
		role, loading := resolver.Resolve(context.Background())
		if role != sdk.RoleStaff || loading {
			t.Fatalf("call %d: expected (staff, false), got (%v, %v)", i, role, loading)
		}
	}
	if hits := backend.hitCount("a@b.com"); hits != 1 {
		t.Fatalf("expected a single backend lookup, got %d", hits)
	}
}

func TestRoleResolver_LookupFailureFailsClosed(t *testing.T) {
	backend := newRoleBackend(nil) // every lookup 404s
	provider := &fakeProvider{}
	store := signedInStore(provider, &sdk.Identity{Subject: "u1", Email: "ghost@b.com"})
	resolver := newResolver(t, backend, provider, store)

	role, loading := resolver.Resolve(context.Background())
	if role != sdk.RoleUnresolved || loading {
		t.Fatalf("expected (unresolved, false) on lookup failure, got (%v, %v)", role, loading)
	}

	// Failures are not cached; the next call tries again.
	resolver.Resolve(context.Background())
	if hits := backend.hitCount("ghost@b.com"); hits != 2 {
		t.Fatalf("expected failed lookups to retry, got %d hits", hits)
	}
}

func TestRoleResolver_StaleLookupNeverOverwritesNewEmail(t *testing.T) {
	backend := newRoleBackend(map[string]string{
		"userA@x.com": "admin",
		"userB@x.com": "citizen",
	})
	started, release := backend.block("userA@x.com")

	provider := &fakeProvider{}
	store := signedInStore(provider, &sdk.Identity{Subject: "uA", Email: "userA@x.com"})
	resolver := newResolver(t, backend, provider, store)

	type result struct {
		role    sdk.Role
		pending bool
	}
	staleDone := make(chan result, 1)
	go func() {
		role, pending := resolver.Resolve(context.Background())
		staleDone <- result{role, pending}
	}()

	// Wait for userA's lookup to be in flight, then switch the session.
	<-started
	provider.emit(&sdk.Identity{Subject: "uB", Email: "userB@x.com"})

	role, loading := resolver.Resolve(context.Background())
	if role != sdk.RoleCitizen || loading {
		t.Fatalf("expected userB to resolve to (citizen, false), got (%v, %v)", role, loading)
	}

	// Let the stale userA lookup land; it must be discarded.
	close(release)
	select {
	case stale := <-staleDone:
		if stale.role != sdk.RoleUnresolved {
			t.Fatalf("stale lookup must not yield a role, got %v", stale.role)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stale lookup never completed")
	}

	role, loading = resolver.Resolve(context.Background())
	if role != sdk.RoleCitizen || loading {
		t.Fatalf("cached role must still reflect userB, got (%v, %v)", role, loading)
	}
	if hits := backend.hitCount("userB@x.com"); hits != 1 {
		t.Fatalf("userB's cache entry was invalidated by the stale result: %d hits", hits)
	}
}
