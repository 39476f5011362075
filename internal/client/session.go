package client

import (
	"sync"
	"time"
)

// Session holds the mutable admin session state: the current token, when it
// was acquired, when a login was last attempted, and whether an exchange is
// in flight. It is owned by a Client and passed by reference, so tests get
// clean isolation from a fresh instance.
//
// The in-flight guard is a broadcast channel rather than a polled flag:
// concurrent callers that lose the race to become the login leader block on
// the channel until the leader closes it, then observe the outcome through
// the token field.
type Session struct {
	mu            sync.Mutex
	token         string
	acquiredAt    time.Time
	lastAttemptAt time.Time
	inflight      chan struct{}
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Token returns the current session token, or "" if none.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// AcquiredAt returns when the current token was stored.
func (s *Session) AcquiredAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquiredAt
}

// SetToken stores a freshly minted token.
func (s *Session) SetToken(token string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.acquiredAt = now
}

// Clear drops the current token unconditionally.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.acquiredAt = time.Time{}
}

// ClearIf drops the token only if it still equals stale. This keeps a 401
// observed with an old token from discarding a newer token that a concurrent
// login stored in the meantime. It reports whether the token was cleared.
func (s *Session) ClearIf(stale string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != stale || s.token == "" {
		return false
	}
	s.token = ""
	s.acquiredAt = time.Time{}
	return true
}

// BeginLogin tries to make the caller the login leader. It returns
// leader=true when the caller must perform the exchange (and later call
// EndLogin exactly once); otherwise it returns the in-flight channel the
// caller should wait on.
func (s *Session) BeginLogin() (leader bool, wait <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight != nil {
		return false, s.inflight
	}
	s.inflight = make(chan struct{})
	return true, nil
}

// EndLogin releases the in-flight guard and wakes every waiter. It must be
// called on every exit path of the leader, success or failure.
func (s *Session) EndLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight != nil {
		close(s.inflight)
		s.inflight = nil
	}
}

// RecordAttempt notes that a credential exchange is being attempted now.
// It is recorded at attempt time, not on success, so repeated failures
// still respect the minimum inter-attempt interval.
func (s *Session) RecordAttempt(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAttemptAt = now
}

// LastAttempt returns when a login was last attempted.
func (s *Session) LastAttempt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAttemptAt
}
