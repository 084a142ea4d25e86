package client

import (
	"context"
	"errors"
	"net/http"
)

// ErrPasswordMismatch is returned by Signup before any network call when
// the confirmation does not match.
var ErrPasswordMismatch = errors.New("Passwords do not match.")

type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Signup registers a new account. The password confirmation is checked
// locally first; a mismatch never reaches the server.
func (c *Client) Signup(ctx context.Context, in SignupInput) error {
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}

	body := map[string]string{
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
	}
	return c.do(ctx, http.MethodPost, "/api/signup", body, nil)
}

// Login authenticates and persists the token and user into the session
// on success. Nothing is persisted on failure.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &out); err != nil {
		return nil, err
	}

	c.Session.SetCredentials(out.Token, &out.User)
	return &out.User, nil
}

// Logout clears the stored credentials. In-flight requests keep the
// Authorization header they were built with.
func (c *Client) Logout() {
	c.Session.Clear()
}

// Me fetches the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
