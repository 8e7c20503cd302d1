package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"pennywise/internal/api"
)

// Client is the slice of the API surface the session needs.
type Client interface {
	SetToken(token string)
	Me(ctx context.Context) (*api.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Session owns the credential lifecycle: load on start, validate, clear on
// logout. It is passed explicitly to whatever needs it; there is no ambient
// auth state.
type Session struct {
	client Client
	log    zerolog.Logger
	user   *api.User
}

func NewSession(client Client, log zerolog.Logger) *Session {
	return &Session{client: client, log: log}
}

// Init loads a stored token and validates it against the service. An invalid
// or unverifiable token is cleared and the session comes up unauthenticated;
// only keyring access trouble is reported as an error.
func (s *Session) Init(ctx context.Context) error {
	token, err := LoadToken()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return nil
		}
		return fmt.Errorf("load stored token: %w", err)
	}

	s.client.SetToken(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		// Silent logout: the stored credential is stale or the service
		// rejected it. Fall back to the login screen.
		s.log.Warn().Err(err).Msg("stored credential failed validation, clearing it")
		s.client.SetToken("")
		if clearErr := ClearToken(); clearErr != nil {
			s.log.Error().Err(clearErr).Msg("failed to clear rejected credential")
		}
		return nil
	}

	s.user = user
	return nil
}

// Login authenticates, persists the token, and starts using it.
func (s *Session) Login(ctx context.Context, email, password string) error {
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err := SaveToken(token); err != nil {
		return err
	}
	s.client.SetToken(token)

	user, err := s.client.Me(ctx)
	if err != nil {
		return fmt.Errorf("validate fresh credential: %w", err)
	}
	s.user = user
	return nil
}

// Logout clears the stored credential and forgets the user.
func (s *Session) Logout() error {
	s.client.SetToken("")
	s.user = nil
	return ClearToken()
}

// Authenticated reports whether a validated user is attached.
func (s *Session) Authenticated() bool {
	return s.user != nil
}

// User returns the validated account, nil when unauthenticated.
func (s *Session) User() *api.User {
	return s.user
}
