// ABOUTME: Session monitor and password auth against the backend
// ABOUTME: Signs in/up/out and exposes the current identity as the auth gate
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Identity is the signed-in user as the rest of the client sees it.
type Identity struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Session is the auth gate the workflow engine consumes: a current
// identity (nil when signed out) plus the three credential operations.
type Session interface {
	Current() *Identity
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context) error
}

// Client talks to a GoTrue-style auth endpoint and persists the granted
// token so sessions survive restarts.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	store   *TokenStore
	log     zerolog.Logger
}

func NewClient(baseURL, apiKey string, store *TokenStore, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
		log:     log,
	}
}

type grantResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	grant, err := c.authRequest(ctx, "/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	token := tokenFromGrant(grant)
	if err := c.store.Save(token); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	c.log.Info().Str("email", email).Msg("signed in")
	return identityFromToken(token)
}

// SignUp registers the account. When the backend requires email
// confirmation no session is granted yet; that case returns (nil, nil).
func (c *Client) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	grant, err := c.authRequest(ctx, "/auth/v1/signup", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if grant.AccessToken == "" {
		return nil, nil
	}
	token := tokenFromGrant(grant)
	if err := c.store.Save(token); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return identityFromToken(token)
}

func (c *Client) SignOut(ctx context.Context) error {
	token, _ := c.store.Load()
	// The local session goes away regardless of whether the revoke lands.
	defer func() { _ = c.store.Clear() }()

	if token == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	token.SetAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusUnauthorized {
		return fmt.Errorf("sign out: %s", readAuthMessage(resp.Body))
	}
	return nil
}

// Current returns the signed-in identity, refreshing an expired token once
// when a refresh token is on hand. Nil means signed out.
func (c *Client) Current() *Identity {
	token, err := c.store.Load()
	if err != nil || token == nil {
		return nil
	}
	if !token.Valid() {
		if token.RefreshToken == "" {
			return nil
		}
		token, err = c.refresh(context.Background(), token)
		if err != nil {
			c.log.Debug().Err(err).Msg("session refresh failed")
			return nil
		}
	}
	id, err := identityFromToken(token)
	if err != nil {
		return nil
	}
	return id
}

// TokenSource hands the gateway a bearer token for each request.
func (c *Client) TokenSource() oauth2.TokenSource {
	return &storeTokenSource{client: c}
}

type storeTokenSource struct {
	client *Client
}

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.client.store.Load()
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("not signed in")
	}
	if token.Valid() {
		return token, nil
	}
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("session expired")
	}
	return s.client.refresh(context.Background(), token)
}

func (c *Client) refresh(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error) {
	grant, err := c.authRequest(ctx, "/auth/v1/token?grant_type=refresh_token", map[string]string{
		"refresh_token": token.RefreshToken,
	})
	if err != nil {
		return nil, err
	}
	fresh := tokenFromGrant(grant)
	if err := c.store.Save(fresh); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return fresh, nil
}

func (c *Client) authRequest(ctx context.Context, path string, body map[string]string) (*grantResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s", readAuthMessage(resp.Body))
	}

	var grant grantResponse
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	return &grant, nil
}

func tokenFromGrant(grant *grantResponse) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  grant.AccessToken,
		TokenType:    grant.TokenType,
		RefreshToken: grant.RefreshToken,
		Expiry:       time.Now().Add(time.Duration(grant.ExpiresIn) * time.Second),
	}
}

// identityFromToken reads the user id and email out of the access token's
// claims. The token is not verified locally; the backend is the verifier
// and rejects bad tokens on every call anyway.
func identityFromToken(token *oauth2.Token) (*Identity, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	id := &Identity{ExpiresAt: token.Expiry}
	if sub, err := claims.GetSubject(); err == nil {
		id.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id, nil
}

func readAuthMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "authentication failed"
	}
	var payload struct {
		Message     string `json:"message"`
		Msg         string `json:"msg"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		switch {
		case payload.Description != "":
			return payload.Description
		case payload.Msg != "":
			return payload.Msg
		case payload.Message != "":
			return payload.Message
		}
	}
	return string(raw)
}
