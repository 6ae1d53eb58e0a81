package sdk_test

import (
	"context"
	"errors"
	"testing"

	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

func TestSessionStore_InitialState(t *testing.T) {
	store := sdk.NewSessionStore(&fakeProvider{})

	session := store.Session()
	if !session.Loading {
		t.Fatal("expected loading before the provider resolves")
	}
	if session.Identity != nil {
		t.Fatalf("expected nil identity, got %+v", session.Identity)
	}
}

func TestSessionStore_SubscribeResolvesToNoIdentity(t *testing.T) {
	store := sdk.NewSessionStore(&fakeProvider{})
	if err := store.Subscribe(); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	session := store.Session()
	if session.Loading {
		t.Fatal("expected loading to clear after the first provider notification")
	}
	if session.Identity != nil {
		t.Fatalf("expected nil identity, got %+v", session.Identity)
	}
}

func TestSessionStore_SubscribeIdempotent(t *testing.T) {
	provider := &fakeProvider{}
	store := sdk.NewSessionStore(provider)

	if err := store.Subscribe(); err != nil {
		t.Fatalf("first subscribe failed: %v", err)
	}
	if err := store.Subscribe(); err != nil {
		t.Fatalf("second subscribe failed: %v", err)
	}

	subscribes, _, _ := provider.counts()
	if subscribes != 1 {
		t.Fatalf("expected exactly one provider listener, got %d", subscribes)
	}
}

func TestSessionStore_SignInEmitsIdentity(t *testing.T) {
	provider := &fakeProvider{}
	store := sdk.NewSessionStore(provider)
	if err := store.Subscribe(); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := store.SignIn(context.Background(), "a@b.com", "hunter2"); err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}

	session := store.Session()
	if session.Loading {
		t.Fatal("expected loading to clear once the identity arrived")
	}
	if session.Identity == nil || session.Identity.Email != "a@b.com" {
		t.Fatalf("expected identity a@b.com, got %+v", session.Identity)
	}
}

func TestSessionStore_SignInFailureSurfacesProviderMessage(t *testing.T) {
	provider := &fakeProvider{signInErr: &sdk.InvalidCredentialError{Message: "wrong password"}}
	store := sdk.NewSessionStore(provider)
	if err := store.Subscribe(); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	err := store.SignIn(context.Background(), "a@b.com", "nope")
	var credErr *sdk.InvalidCredentialError
	if !errors.As(err, &credErr) {
		t.Fatalf("expected InvalidCredentialError, got %v", err)
	}
	if credErr.Message != "wrong password" {
		t.Fatalf("provider message not surfaced verbatim: %q", credErr.Message)
	}
	if store.Session().Loading {
		t.Fatal("loading must clear after a failed sign-in")
	}
}

func TestSessionStore_UpdateProfilePatchesLocally(t *testing.T) {
	provider := &fakeProvider{}
	store := signedInStore(provider, &sdk.Identity{Subject: "u1", Email: "a@b.com", DisplayName: "Old"})

	if err := store.UpdateProfile(context.Background(), "New Name", "https://img.example/p.png"); err != nil {
		t.Fatalf("update profile failed: %v", err)
	}

	// The provider emits no notification for profile edits; the local
	// identity must reflect the change anyway.
	identity := store.Session().Identity
	if identity == nil || identity.DisplayName != "New Name" || identity.PhotoURL != "https://img.example/p.png" {
		t.Fatalf("local identity not patched: %+v", identity)
	}
	if identity.Email != "a@b.com" {
		t.Fatalf("non-display fields must be preserved, got %+v", identity)
	}
}

func TestSessionStore_SignOutWaitsForProviderNotification(t *testing.T) {
	provider := &fakeProvider{deferSignOut: true}
	store := signedInStore(provider, &sdk.Identity{Subject: "u1", Email: "a@b.com"})

	if err := store.SignOut(context.Background()); err != nil {
		t.Fatalf("sign-out failed: %v", err)
	}
	if store.Session().Identity == nil {
		t.Fatal("identity must survive until the provider notification fires")
	}

	provider.emit(nil)
	if store.Session().Identity != nil {
		t.Fatal("identity must clear once the provider notifies")
	}
}

func TestSessionStore_ResetPasswordValidatesEmailLocally(t *testing.T) {
	store := sdk.NewSessionStore(&fakeProvider{})

	err := store.ResetPassword(context.Background(), "not-an-email")
	var emailErr *sdk.InvalidEmailError
	if !errors.As(err, &emailErr) {
		t.Fatalf("expected InvalidEmailError, got %v", err)
	}

	if err := store.ResetPassword(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("valid address rejected: %v", err)
	}
}
