package client

import (
	"context"
	"sync"

	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"github.com/S-Arafin/City-Resolved/cmd/cityctl/internal/auth"
	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

// Options configure the provider for one CLI invocation.
type Options struct {
	ServerURL    string
	Issuer       string
	ClientID     string
	ClientSecret string
	Logger       *zap.Logger
}

// Provider yields the session store, authenticated gateway, SDK client,
// and role resolver, each constructed once and backed by the credential
// store. The wiring mirrors the application dependency order: session
// first, gateway over it, resolver over both.
type Provider struct {
	opts Options

	identityOnce sync.Once
	identity     *sdk.OIDCProvider
	identityErr  error

	sessionOnce sync.Once
	session     *sdk.SessionStore
	sessionErr  error

	sdkOnce   sync.Once
	sdkClient *sdk.Client
	sdkErr    error

	resolverOnce sync.Once
	resolver     *sdk.RoleResolver
	resolverErr  error
}

// NewProvider constructs a new Provider bound to the given options.
func NewProvider(opts Options) *Provider {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Provider{opts: opts}
}

// IdentityProvider returns the OIDC identity provider backed by the
// credential file store.
func (p *Provider) IdentityProvider() (*sdk.OIDCProvider, error) {
	p.identityOnce.Do(func() {
		store, err := auth.NewFileStore()
		if err != nil {
			p.identityErr = err
			return
		}
		p.identity = sdk.NewOIDCProvider(sdk.ProviderConfig{
			Issuer:       p.opts.Issuer,
			ClientID:     p.opts.ClientID,
			ClientSecret: p.opts.ClientSecret,
		},
			sdk.WithCredentialStore(store),
			sdk.WithProviderLogger(p.opts.Logger),
		)
	})
	return p.identity, p.identityErr
}

// SessionStore returns the subscribed session store. The subscription is
// established once; the provider resolves immediately from the stored
// credentials (or to signed-out).
func (p *Provider) SessionStore() (*sdk.SessionStore, error) {
	p.sessionOnce.Do(func() {
		identity, err := p.IdentityProvider()
		if err != nil {
			p.sessionErr = err
			return
		}
		session := sdk.NewSessionStore(identity)
		if err := session.Subscribe(); err != nil {
			p.sessionErr = err
			return
		}
		p.session = session
	})
	return p.session, p.sessionErr
}

// SDKClient returns the backend client routed through the authenticated
// gateway. Expired sessions surface through the gateway's recovery: a
// forced sign-out plus a hint to log in again.
func (p *Provider) SDKClient(ctx context.Context) (*sdk.Client, error) {
	p.sdkOnce.Do(func() {
		session, err := p.SessionStore()
		if err != nil {
			p.sdkErr = err
			return
		}
		identity, err := p.IdentityProvider()
		if err != nil {
			p.sdkErr = err
			return
		}

		gateway := sdk.NewGateway(session, identity,
			sdk.WithGatewayLogger(p.opts.Logger),
			sdk.WithAuthFailureHook(func() {
				pterm.Warning.Println("Your session is no longer valid. Please run `cityctl auth login`.")
			}),
		)
		p.sdkClient = sdk.NewClient(p.opts.ServerURL,
			sdk.WithGateway(gateway),
			sdk.WithLogger(p.opts.Logger),
		)
	})
	return p.sdkClient, p.sdkErr
}

// RoleResolver returns the resolver used by command guards.
func (p *Provider) RoleResolver(ctx context.Context) (*sdk.RoleResolver, error) {
	p.resolverOnce.Do(func() {
		session, err := p.SessionStore()
		if err != nil {
			p.resolverErr = err
			return
		}
		sdkClient, err := p.SDKClient(ctx)
		if err != nil {
			p.resolverErr = err
			return
		}
		resolver := sdk.NewRoleResolver(session, sdkClient)
		resolver.SetLogger(p.opts.Logger)
		p.resolver = resolver
	})
	return p.resolver, p.resolverErr
}

// Session is a convenience snapshot accessor.
func (p *Provider) Session() (sdk.Session, error) {
	store, err := p.SessionStore()
	if err != nil {
		return sdk.Session{}, err
	}
	return store.Session(), nil
}
