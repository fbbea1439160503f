// Package auth resolves a request's credential token into an explicit State
// and guards components behind it.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNoToken      = errors.New("auth: no token")
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrExpiredToken = errors.New("auth: token expired")
)

// Identity is a verified principal.
type Identity struct {
	Subject   string
	SessionID string
	ExpiresAt time.Time
}

// State is the authentication state handed to guards. The zero value is anonymous.
type State struct {
	Authenticated bool
	Identity      Identity
}

// Anonymous returns the unauthenticated state.
func Anonymous() State { return State{} }

// Authenticated returns a state for id.
func Authenticated(id Identity) State {
	return State{Authenticated: true, Identity: id}
}

// Verifier validates a credential token.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (Identity, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Identity, error) {
	return f(ctx, token)
}

// Resolve verifies token and returns the resulting state. Any rejection,
// including a missing verifier, yields the anonymous state.
func Resolve(ctx context.Context, v Verifier, token string) State {
	if v == nil || strings.TrimSpace(token) == "" {
		return Anonymous()
	}
	id, err := v.Verify(ctx, token)
	if err != nil {
		return Anonymous()
	}
	return Authenticated(id)
}

// PresenceVerifier accepts any non-empty token without checking it. It keeps
// the behaviour of sites that treat a token cookie as proof of login and is
// not safe for anything that matters.
type PresenceVerifier struct{}

func (PresenceVerifier) Verify(_ context.Context, token string) (Identity, error) {
	if strings.TrimSpace(token) == "" {
		return Identity{}, ErrNoToken
	}
	return Identity{Subject: "token", SessionID: token}, nil
}

// Session is a server-side login session.
type Session struct {
	ID        string
	Subject   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore looks up sessions by id. Implementations return ErrInvalidToken
// for unknown ids.
type SessionStore interface {
	LookupSession(ctx context.Context, id string) (Session, error)
}

// SessionVerifier accepts tokens naming a live session in Store.
type SessionVerifier struct {
	Store SessionStore
	Now   func() time.Time
}

func (v SessionVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrNoToken
	}
	if v.Store == nil {
		return Identity{}, ErrInvalidToken
	}
	s, err := v.Store.LookupSession(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	if !now().Before(s.ExpiresAt) {
		return Identity{}, ErrExpiredToken
	}
	return Identity{Subject: s.Subject, SessionID: s.ID, ExpiresAt: s.ExpiresAt}, nil
}
