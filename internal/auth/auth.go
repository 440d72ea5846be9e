package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Roles recognized by the admin-gating middleware. The gate is a UI
// affordance: viewers get read-only access, admins everything.
const (
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

const sessionTTL = 12 * time.Hour

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

type user struct {
	name string
	hash []byte
	role string
}

// Session is one logged-in token.
type Session struct {
	Token     string
	Username  string
	Role      string
	ExpiresAt time.Time
}

// Service holds the built-in user set and the live sessions. Users are
// fixed at construction; this is a single-workstation tool, not an
// account system.
type Service struct {
	users map[string]user

	mu       sync.Mutex
	sessions map[string]Session
}

// NewService hashes the built-in credentials (admin/admin as admin,
// gold/gold as viewer) and returns a ready service.
func NewService() (*Service, error) {
	users := map[string]user{}
	for _, u := range []struct {
		name, password, role string
	}{
		{"admin", "admin", RoleAdmin},
		{"gold", "gold", RoleViewer},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash password for %q: %w", u.name, err)
		}
		users[u.name] = user{name: u.name, hash: hash, role: u.role}
	}

	return &Service{users: users, sessions: map[string]Session{}}, nil
}

// Login verifies the credentials and issues a session token.
func (s *Service) Login(username, password string) (Session, error) {
	u, ok := s.users[username]
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	session := Session{
		Token:     uuid.NewString(),
		Username:  u.name,
		Role:      u.role,
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session, nil
}

// Logout discards the session; unknown tokens are a no-op.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Validate resolves a token to its live session. Expired sessions are
// dropped on sight.
func (s *Service) Validate(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if time.Now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		return Session{}, false
	}
	return session, true
}
