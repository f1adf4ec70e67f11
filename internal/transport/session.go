package transport

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/google/uuid"
)

// Sessions issues and tracks admin bearer tokens in memory.
type Sessions struct {
	username string
	password string

	mu     sync.RWMutex
	tokens map[string]string
}

// NewSessions creates a session set for a single admin account.
func NewSessions(username, password string) *Sessions {
	return &Sessions{
		username: username,
		password: password,
		tokens:   make(map[string]string),
	}
}

// Login checks the credentials and returns a fresh token.
func (s *Sessions) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", ErrUnauthorized
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = username
	s.mu.Unlock()
	return token, nil
}

// Logout forgets a token. Unknown tokens are ignored.
func (s *Sessions) Logout(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// ResolveUser implements UserResolver.
func (s *Sessions) ResolveUser(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.tokens[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return user, nil
}
