package sdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateUserInput is the backend user record written after registration or
// a first federated sign-in.
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
}

// AddStaffInput creates a staff account (admin only).
type AddStaffInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Photo    string `json:"photo,omitempty"`
}

// UpdateUserInfoInput edits a user's display name and email (admin only).
type UpdateUserInfoInput struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// GetUser fetches the role and profile for an email. This is the lookup
// the role resolver is built on.
func (c *Client) GetUser(ctx context.Context, email string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(email), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser writes the backend user record after registration or a first
// federated sign-in.
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) error {
	return c.do(ctx, http.MethodPost, "/users", nil, input, nil)
}

// ListUsers returns users filtered by role (admin only).
func (c *Client) ListUsers(ctx context.Context, role Role) ([]User, error) {
	query := url.Values{}
	if role != RoleUnresolved {
		query.Set("role", role.String())
	}
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", query, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserStatus blocks or unblocks a user (admin only).
func (c *Client) SetUserStatus(ctx context.Context, id string, blocked bool) error {
	body := map[string]bool{"blocked": blocked}
	return c.do(ctx, http.MethodPatch, "/users/status/"+url.PathEscape(id), nil, body, nil)
}

// UpdateUserInfo edits a user's name and email (admin only).
func (c *Client) UpdateUserInfo(ctx context.Context, id string, input UpdateUserInfoInput) error {
	return c.do(ctx, http.MethodPatch, "/users/info/"+url.PathEscape(id), nil, input, nil)
}

// AddStaff creates a staff account (admin only).
func (c *Client) AddStaff(ctx context.Context, input AddStaffInput) error {
	return c.do(ctx, http.MethodPost, "/users/add-staff", nil, input, nil)
}

// DeleteUser removes a user record (admin only).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}
