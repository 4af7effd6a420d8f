package payu

import (
	"sync"
	"time"
)

// refreshMargin is subtracted from the real expiry when deciding whether the
// held token is still usable, so a refresh happens well before the gateway
// starts rejecting it.
const refreshMargin = 300 * time.Second

// Session holds the OAuth access token shared by all session-mode calls of one
// process. The mutex guarantees a reader never sees a half-replaced
// token/type/expiry triple.
type Session struct {
	mu        sync.Mutex
	token     string
	tokenType string
	expiresAt time.Time
}

func NewSession() *Session {
	return &Session{}
}

// Usable reports whether the held token can still be attached to a request at
// the given instant. It is false when no token is held or when now has reached
// the refresh margin; at exactly expiry−margin the token counts as unusable.
func (s *Session) Usable(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return false
	}
	return now.Before(s.expiresAt.Add(-refreshMargin))
}

// Replace installs a freshly issued token, overwriting the whole triple in one
// step. Only the token refresher calls this.
func (s *Session) Replace(token, tokenType string, expiresIn time.Duration, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.tokenType = tokenType
	s.expiresAt = now.Add(expiresIn)
}

// authorization returns the Authorization header value for the held token, or
// "" when no complete token is held.
func (s *Session) authorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || s.tokenType == "" {
		return ""
	}
	return s.tokenType + " " + s.token
}

// state returns token presence and expiry for logging and tests. The token
// value itself never leaves the session.
func (s *Session) state() (held bool, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "", s.expiresAt
}
