package sdk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

func TestGateway_FreshTokenPerRequest(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider := &fakeProvider{}
	store := signedInStore(provider, &sdk.Identity{Subject: "u1", Email: "a@b.com"})
	gateway := sdk.NewGateway(store, provider)

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, server.URL+"/issues", nil)
		resp, err := gateway.Do(req)
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		resp.Body.Close()
	}

	// The token must be minted once per call, never cached.
	_, tokens, _ := provider.counts()
	if tokens != 3 {
		t.Fatalf("expected 3 token mints for 3 requests, got %d", tokens)
	}
	want := []string{"Bearer token-1", "Bearer token-2", "Bearer token-3"}
	for i, header := range seen {
		if header != want[i] {
			t.Fatalf("request %d carried %q, want %q", i, header, want[i])
		}
	}
}

func TestGateway_AnonymousWithoutIdentity(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider := &fakeProvider{}
	store := sdk.NewSessionStore(provider)
	if err := store.Subscribe(); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	gateway := sdk.NewGateway(store, provider)

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/issues", nil)
	resp, err := gateway.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if authHeader != "" {
		t.Fatalf("anonymous request must not carry Authorization, got %q", authHeader)
	}
	if _, tokens, _ := provider.counts(); tokens != 0 {
		t.Fatalf("no token must be minted without an identity, got %d mints", tokens)
	}
}

func TestGateway_AuthorizationFailureRecovery(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		provider := &fakeProvider{}
		store := signedInStore(provider, &sdk.Identity{Subject: "u1", Email: "a@b.com"})

		redirects := 0
		gateway := sdk.NewGateway(store, provider, sdk.WithAuthFailureHook(func() {
			redirects++
		}))

		req, _ := http.NewRequest(http.MethodGet, server.URL+"/users/a@b.com", nil)
		_, err := gateway.Do(req)

		var authErr *sdk.AuthorizationError
		if !errors.As(err, &authErr) {
			t.Fatalf("status %d: expected AuthorizationError, got %v", status, err)
		}
		if authErr.StatusCode != status {
			t.Fatalf("expected status %d carried, got %d", status, authErr.StatusCode)
		}
		if _, _, signOuts := provider.counts(); signOuts != 1 {
			t.Fatalf("status %d: expected exactly one forced sign-out, got %d", status, signOuts)
		}
		if redirects != 1 {
			t.Fatalf("status %d: expected exactly one redirect, got %d", status, redirects)
		}
		if store.Session().Identity != nil {
			t.Fatalf("status %d: session must be cleared after recovery", status)
		}

		server.Close()
	}
}

func TestGateway_OtherStatusesPassThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	provider := &fakeProvider{}
	store := signedInStore(provider, &sdk.Identity{Subject: "u1", Email: "a@b.com"})
	gateway := sdk.NewGateway(store, provider)

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := gateway.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTeapot {
		t.Fatalf("expected status to pass through unmodified, got %d", resp.StatusCode)
	}
	if _, _, signOuts := provider.counts(); signOuts != 0 {
		t.Fatal("non-authorization statuses must not trigger recovery")
	}
}

func TestGateway_TransportFailureIsNetworkError(t *testing.T) {
	provider := &fakeProvider{}
	store := sdk.NewSessionStore(provider)
	if err := store.Subscribe(); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	gateway := sdk.NewGateway(store, provider)

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://127.0.0.1:1/unreachable", nil)
	_, err := gateway.Do(req)

	var netErr *sdk.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}
