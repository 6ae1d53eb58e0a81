package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/client/rp/cli"
	"github.com/zitadel/oidc/v3/pkg/oidc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ProviderConfig configures the OIDC-backed identity provider.
type ProviderConfig struct {
	// Issuer is the identity provider base URL used for OIDC discovery.
	Issuer string
	// ClientID identifies this client at the provider.
	ClientID string
	// ClientSecret is optional; empty for public clients.
	ClientSecret string

	// Paths for account operations OIDC does not standardize, relative to
	// the issuer. Defaults cover the CityResolved deployment.
	RegisterPath      string
	ResetPasswordPath string
	ProfilePath       string
}

func (c *ProviderConfig) applyDefaults() {
	if c.RegisterPath == "" {
		c.RegisterPath = "/account/register"
	}
	if c.ResetPasswordPath == "" {
		c.ResetPasswordPath = "/account/password-reset"
	}
	if c.ProfilePath == "" {
		c.ProfilePath = "/account/profile"
	}
}

// DevicePrompt displays browser-flow instructions to the user.
type DevicePrompt func(userCode, verificationURI, verificationURIComplete string)

// OIDCProvider implements IdentityProvider against an OIDC identity
// service: password grant for direct sign-in, device authorization for the
// browser flow, refresh grant for per-request token minting.
type OIDCProvider struct {
	cfg        ProviderConfig
	store      CredentialStore
	httpClient *http.Client
	logger     *zap.Logger
	prompt     DevicePrompt

	mu       sync.Mutex
	relying  rp.RelyingParty
	creds    *Credentials
	listener func(*Identity)
}

// ProviderOption mutates OIDCProvider construction.
type ProviderOption func(*OIDCProvider)

// WithCredentialStore persists credentials across runs and restores the
// session from them on Subscribe.
func WithCredentialStore(store CredentialStore) ProviderOption {
	return func(p *OIDCProvider) { p.store = store }
}

// WithProviderHTTPClient overrides the HTTP client used for provider calls.
func WithProviderHTTPClient(client *http.Client) ProviderOption {
	return func(p *OIDCProvider) { p.httpClient = client }
}

// WithProviderLogger enables structured debug logging.
func WithProviderLogger(logger *zap.Logger) ProviderOption {
	return func(p *OIDCProvider) { p.logger = logger }
}

// WithDevicePrompt overrides how browser-flow instructions are shown.
func WithDevicePrompt(prompt DevicePrompt) ProviderOption {
	return func(p *OIDCProvider) { p.prompt = prompt }
}

// NewOIDCProvider constructs the provider. No network traffic happens
// until the first operation; discovery is performed lazily.
func NewOIDCProvider(cfg ProviderConfig, optFns ...ProviderOption) *OIDCProvider {
	cfg.applyDefaults()
	p := &OIDCProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     zap.NewNop(),
		prompt:     printDeviceCodeInstructions,
	}
	for _, fn := range optFns {
		fn(p)
	}
	return p
}

// Subscribe registers the single identity listener. The current state is
// delivered immediately: the identity restored from the credential store
// when one is persisted and unexpired-or-refreshable, nil otherwise.
func (p *OIDCProvider) Subscribe(fn func(*Identity)) (func(), error) {
	p.mu.Lock()
	if p.listener != nil {
		p.mu.Unlock()
		return nil, errors.New("identity listener already registered")
	}
	p.listener = fn

	if p.creds == nil && p.store != nil {
		if creds, err := p.store.LoadCredentials(); err == nil {
			if !creds.IsExpired() || creds.RefreshToken != "" {
				p.creds = creds
			}
		}
	}
	identity := p.creds.Identity()
	p.mu.Unlock()

	fn(identity)

	release := func() {
		p.mu.Lock()
		p.listener = nil
		p.mu.Unlock()
	}
	return release, nil
}

// SignIn performs the resource-owner password grant and emits the new
// identity through the subscription.
func (p *OIDCProvider) SignIn(ctx context.Context, email, password string) error {
	relying, err := p.relyingParty(ctx)
	if err != nil {
		return err
	}

	token, err := relying.OAuthConfig().PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var retrieve *oauth2.RetrieveError
		if errors.As(err, &retrieve) {
			msg := retrieve.ErrorDescription
			if msg == "" {
				msg = retrieve.ErrorCode
			}
			return &InvalidCredentialError{Message: msg}
		}
		return p.classify("sign-in", err)
	}

	p.logger.Debug("password grant succeeded", zap.String("email", email))
	return p.adoptToken(ctx, relying, token, email)
}

// SignInWithBrowser initiates the OIDC device authorization flow: the user
// approves the sign-in in a browser while the provider polls the token
// endpoint. An abandoned or denied flow returns PopupClosedError.
func (p *OIDCProvider) SignInWithBrowser(ctx context.Context) error {
	relying, err := p.relyingParty(ctx)
	if err != nil {
		return err
	}

	authResponse, err := rp.DeviceAuthorization(ctx, deviceScopes(), relying, nil)
	if err != nil {
		return p.classify("device authorization", err)
	}

	p.prompt(authResponse.UserCode, authResponse.VerificationURI, authResponse.VerificationURIComplete)
	if authResponse.VerificationURIComplete != "" {
		cli.OpenBrowser(authResponse.VerificationURIComplete)
	}

	interval := time.Duration(authResponse.Interval) * time.Second
	if interval == 0 {
		interval = 5 * time.Second
	}

	token, err := rp.DeviceAccessToken(ctx, authResponse.DeviceCode, interval, relying)
	if err != nil {
		if isFlowAbandoned(err) || ctx.Err() != nil {
			return &PopupClosedError{Reason: "authorization was denied or expired"}
		}
		return p.classify("device token", err)
	}

	expiresAt := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	oauthToken := &oauth2.Token{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       expiresAt,
	}
	if token.IDToken != "" {
		oauthToken = oauthToken.WithExtra(map[string]any{"id_token": token.IDToken})
	}
	return p.adoptToken(ctx, relying, oauthToken, "")
}

// CreateAccount registers the account at the provider, then signs in with
// the new credentials so the identity is emitted like any other sign-in.
func (p *OIDCProvider) CreateAccount(ctx context.Context, email, password, displayName, photoURL string) error {
	payload := map[string]string{
		"email":       email,
		"password":    password,
		"displayName": displayName,
		"photoURL":    photoURL,
	}
	if err := p.postAccount(ctx, p.cfg.RegisterPath, payload, ""); err != nil {
		return err
	}
	return p.SignIn(ctx, email, password)
}

// ResetPassword requests a reset email for the address.
func (p *OIDCProvider) ResetPassword(ctx context.Context, email string) error {
	return p.postAccount(ctx, p.cfg.ResetPasswordPath, map[string]string{"email": email}, "")
}

// UpdateProfile updates the display fields at the provider. The session
// store reflects the change locally; no notification is emitted here.
func (p *OIDCProvider) UpdateProfile(ctx context.Context, displayName, photoURL string) error {
	p.mu.Lock()
	creds := p.creds
	p.mu.Unlock()
	if creds == nil {
		return &ProviderError{Op: "update profile", Err: errors.New("not signed in")}
	}

	payload := map[string]string{
		"displayName": displayName,
		"photoURL":    photoURL,
	}
	if err := p.postAccount(ctx, p.cfg.ProfilePath, payload, creds.AccessToken); err != nil {
		return err
	}

	p.mu.Lock()
	if p.creds != nil {
		p.creds.DisplayName = displayName
		p.creds.PhotoURL = photoURL
		p.persistLocked()
	}
	p.mu.Unlock()
	return nil
}

// SignOut revokes the refresh token (best effort), drops the stored
// credentials, and emits a nil identity.
func (p *OIDCProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	creds := p.creds
	p.creds = nil
	relying := p.relying
	p.mu.Unlock()

	if creds != nil && creds.RefreshToken != "" && relying != nil {
		if err := rp.RevokeToken(ctx, relying, creds.RefreshToken, "refresh_token"); err != nil {
			p.logger.Debug("token revocation failed", zap.Error(err))
		}
	}
	if p.store != nil {
		if err := p.store.DeleteCredentials(); err != nil {
			return &ProviderError{Op: "sign-out", Err: err}
		}
	}

	p.notify(nil)
	return nil
}

// AccessToken mints a fresh bearer token. When a refresh token is held the
// refresh grant runs on every call rather than replaying a possibly stale
// access token; otherwise the current unexpired token is returned.
func (p *OIDCProvider) AccessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	creds := p.creds
	p.mu.Unlock()
	if creds == nil {
		return "", &ProviderError{Op: "access token", Err: errors.New("not signed in")}
	}

	if creds.RefreshToken == "" {
		if creds.IsExpired() {
			return "", &ProviderError{Op: "access token", Err: errors.New("token expired and no refresh token held")}
		}
		return creds.AccessToken, nil
	}

	relying, err := p.relyingParty(ctx)
	if err != nil {
		return "", err
	}

	source := relying.OAuthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	token, err := source.Token()
	if err != nil {
		return "", p.classify("token refresh", err)
	}

	p.mu.Lock()
	if p.creds != nil {
		p.creds.AccessToken = token.AccessToken
		p.creds.TokenType = token.TokenType
		p.creds.ExpiresAt = token.Expiry
		if token.RefreshToken != "" {
			p.creds.RefreshToken = token.RefreshToken
		}
		p.persistLocked()
	}
	p.mu.Unlock()

	return token.AccessToken, nil
}

// --- internals ---

func (p *OIDCProvider) relyingParty(ctx context.Context) (rp.RelyingParty, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.relying != nil {
		return p.relying, nil
	}

	relying, err := rp.NewRelyingPartyOIDC(
		ctx,
		p.cfg.Issuer,
		p.cfg.ClientID,
		p.cfg.ClientSecret,
		"", // redirectURI - not used for device or password flows
		deviceScopes(),
		rp.WithHTTPClient(p.httpClient),
	)
	if err != nil {
		return nil, &ProviderError{Op: "discovery", Err: fmt.Errorf("failed to discover OIDC provider at %s: %w", p.cfg.Issuer, err)}
	}
	p.relying = relying
	return relying, nil
}

// adoptToken builds the identity from the token, persists the credentials,
// and emits the identity notification.
func (p *OIDCProvider) adoptToken(ctx context.Context, relying rp.RelyingParty, token *oauth2.Token, fallbackEmail string) error {
	creds := &Credentials{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
		Email:        fallbackEmail,
	}

	if raw, ok := token.Extra("id_token").(string); ok && raw != "" {
		claims, err := rp.VerifyIDToken[*oidc.IDTokenClaims](ctx, raw, relying.IDTokenVerifier())
		if err != nil {
			p.logger.Warn("id token verification failed", zap.Error(err))
		} else {
			creds.Subject = claims.Subject
			creds.Email = claims.Email
			creds.DisplayName = claims.Name
			creds.PhotoURL = claims.Picture
		}
	}
	if creds.Subject == "" {
		// No usable ID token; fall back to the access token's claims.
		sub, email, name, picture := unverifiedClaims(token.AccessToken)
		creds.Subject = sub
		if creds.Email == "" {
			creds.Email = email
		}
		creds.DisplayName = name
		creds.PhotoURL = picture
	}
	if creds.Subject == "" {
		creds.Subject = creds.Email
	}

	p.mu.Lock()
	p.creds = creds
	p.persistLocked()
	p.mu.Unlock()

	p.notify(creds.Identity())
	return nil
}

func (p *OIDCProvider) persistLocked() {
	if p.store == nil || p.creds == nil {
		return
	}
	if err := p.store.SaveCredentials(p.creds); err != nil {
		p.logger.Warn("failed to persist credentials", zap.Error(err))
	}
}

func (p *OIDCProvider) notify(id *Identity) {
	p.mu.Lock()
	listener := p.listener
	p.mu.Unlock()
	if listener != nil {
		listener(id)
	}
}

func (p *OIDCProvider) postAccount(ctx context.Context, path string, payload map[string]string, bearer string) error {
	endpoint, err := url.JoinPath(p.cfg.Issuer, path)
	if err != nil {
		return &ProviderError{Op: path, Err: err}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &ProviderError{Op: path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &ProviderError{Op: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ProviderError{Op: path, Err: fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(msg)))}
	}
	return nil
}

func (p *OIDCProvider) classify(op string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &NetworkError{Err: err}
	}
	return &ProviderError{Op: op, Err: err}
}

func deviceScopes() []string {
	return []string{oidc.ScopeOpenID, oidc.ScopeProfile, oidc.ScopeEmail, oidc.ScopeOfflineAccess}
}

// isFlowAbandoned reports whether a device-flow error means the user
// denied the request or let it expire.
func isFlowAbandoned(err error) bool {
	var oidcErr *oidc.Error
	if errors.As(err, &oidcErr) {
		return oidcErr.ErrorType == oidc.AccessDenied || oidcErr.ErrorType == oidc.ExpiredToken
	}
	return false
}

// unverifiedClaims pulls display claims out of a JWT without signature
// verification. Used only for local display and the session snapshot; the
// backend independently verifies every token it receives.
func unverifiedClaims(raw string) (subject, email, name, picture string) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
		return "", "", "", ""
	}
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	return str("sub"), str("email"), str("name"), str("picture")
}

func printDeviceCodeInstructions(userCode, verificationURI, verificationURIComplete string) {
	fmt.Println("============================================================")
	fmt.Printf("Your user code is: %s\n", userCode)
	fmt.Println("")
	fmt.Println("Please visit the following URL in your browser to authorize this device:")
	fmt.Printf("  %s\n", verificationURI)
	if verificationURIComplete != "" {
		fmt.Println("")
		fmt.Println("Or use this direct link (includes code):")
		fmt.Printf("  %s\n", verificationURIComplete)
	}
	fmt.Println("============================================================")
	fmt.Println("Waiting for authorization...")
}
