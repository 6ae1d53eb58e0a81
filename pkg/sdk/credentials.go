package sdk

import "time"

// Credentials represents the authentication credentials.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	RefreshToken string    `json:"refresh_token,omitempty"`

	// Identity claims captured at sign-in, used to restore the session
	// without a round trip to the provider.
	Subject     string `json:"subject,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

func (c *Credentials) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// Identity builds the Identity carried by these credentials. Returns nil
// when the credentials carry no subject (never signed in).
func (c *Credentials) Identity() *Identity {
	if c == nil || c.Subject == "" {
		return nil
	}
	return &Identity{
		Subject:     c.Subject,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		PhotoURL:    c.PhotoURL,
	}
}

// CredentialStore persists credentials between runs. The CLI implements it
// with a JSON file; tests use in-memory fakes.
type CredentialStore interface {
	SaveCredentials(credentials *Credentials) error
	LoadCredentials() (*Credentials, error)
	DeleteCredentials() error
}
