// Package session holds the client's authenticated state and keeps it in
// step with durable storage.
package session

import (
	"fmt"
)

// User is the signed-in user as the server reports it.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// State is the persisted form of a session. The zero value is logged out.
type State struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token,omitempty"`
}

// Store persists session state between runs.
type Store interface {
	Load() (State, error)
	Save(State) error
	Clear() error
}

// Session is the in-memory session. Every mutation is written to the store
// first and only applied in memory once the write succeeds.
type Session struct {
	store Store
	state State
}

// New rehydrates a session from store.
func New(store Store) (*Session, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Session{store: store, state: state}, nil
}

// Set records a successful login or registration.
func (s *Session) Set(u User, token string) error {
	next := State{User: &u, Token: token}
	if err := s.store.Save(next); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.state = next
	return nil
}

// Clear logs the session out.
func (s *Session) Clear() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.state = State{}
	return nil
}

func (s *Session) IsLoggedIn() bool {
	return s.state.Token != ""
}

func (s *Session) Token() string {
	return s.state.Token
}

// User returns the signed-in user, if any.
func (s *Session) User() (User, bool) {
	if s.state.User == nil {
		return User{}, false
	}
	return *s.state.User, true
}
