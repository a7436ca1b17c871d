package apiclient

import (
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Session holds the bearer token for one signed-in dashboard user. It is
// passed to the Client explicitly and is safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewSession() *Session {
	return &Session{now: time.Now}
}

// Set stores token and reads its exp claim. The signature is not checked
// here; the server does that on every request.
func (s *Session) Set(token string) {
	var exp time.Time
	claims := jwtlib.RegisteredClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = exp
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Invalidate forgets the token, e.g. after the server answered 401.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}

// Valid reports whether a token is held and not yet expired. Tokens without
// an exp claim count as valid until the server rejects them.
func (s *Session) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	return s.expiresAt.IsZero() || s.now().Before(s.expiresAt)
}
