package api

import (
	"context"
	"net/http"

	"github.com/samphillips38/bloom-web-sub001/internal/model"
)

// TokenPair is the credential pair issued by the Bloom API.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult is the response to a successful login, registration, or
// social sign-in.
type AuthResult struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

func (r AuthResult) Tokens() TokenPair {
	return TokenPair{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	req := map[string]string{"email": email, "password": password}
	var res AuthResult
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	req := map[string]string{"name": name, "email": email, "password": password}
	var res AuthResult
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GoogleLogin exchanges a Google credential for a Bloom session. The
// credential is verified remotely; the front-end never inspects it.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (*AuthResult, error) {
	req := map[string]string{"credential": credential}
	var res AuthResult
	if err := c.do(ctx, "google_login", http.MethodPost, "/auth/google", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// AppleLogin exchanges an Apple identity token for a Bloom session.
// Apple only sends the user's name on first authorization, so the
// optional name hint is forwarded when present.
func (c *Client) AppleLogin(ctx context.Context, idToken, nameHint string) (*AuthResult, error) {
	req := map[string]string{"idToken": idToken}
	if nameHint != "" {
		req["name"] = nameHint
	}
	var res AuthResult
	if err := c.do(ctx, "apple_login", http.MethodPost, "/auth/apple", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RefreshToken exchanges a refresh token for a new token pair.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (*TokenPair, error) {
	req := map[string]string{"refreshToken": refresh}
	var res TokenPair
	if err := c.do(ctx, "refresh_token", http.MethodPost, "/auth/refresh", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout revokes the session on the server side.
func (c *Client) Logout(ctx context.Context, access string) error {
	return c.do(ctx, "logout", http.MethodPost, "/auth/logout", access, nil, nil)
}

// GetProfile returns the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context, access string) (*model.User, error) {
	var res struct {
		User *model.User `json:"user"`
	}
	if err := c.do(ctx, "get_profile", http.MethodGet, "/users/me", access, nil, &res); err != nil {
		return nil, err
	}
	return res.User, nil
}
