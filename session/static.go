// ABOUTME: Always-present session for offline mode
// ABOUTME: Satisfies the auth gate without a remote auth endpoint
package session

import (
	"context"
	"time"
)

// Static is the session used with the local store: one fixed identity,
// signed in from the start. Sign-out still "works" so the TUI's logout
// path behaves the same offline.
type Static struct {
	identity Identity
	signedIn bool
}

func NewStatic(email string) *Static {
	return &Static{
		identity: Identity{
			UserID:    "local",
			Email:     email,
			ExpiresAt: time.Now().AddDate(10, 0, 0),
		},
		signedIn: true,
	}
}

func (s *Static) Current() *Identity {
	if !s.signedIn {
		return nil
	}
	id := s.identity
	return &id
}

func (s *Static) SignIn(_ context.Context, email, _ string) (*Identity, error) {
	if email != "" {
		s.identity.Email = email
	}
	s.signedIn = true
	id := s.identity
	return &id, nil
}

func (s *Static) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	return s.SignIn(ctx, email, password)
}

func (s *Static) SignOut(context.Context) error {
	s.signedIn = false
	return nil
}
