package services

import (
	"sync"

	"github.com/dmitrijs2005/postboard/internal/api"
)

// Session is the in-memory login state shared by the services and the HTTP
// transport. Its Token method is the transport's TokenSource.
type Session struct {
	mu      sync.RWMutex
	token   string
	profile api.Profile
}

func NewSession() *Session {
	return &Session{}
}

// Token returns the current bearer token, "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile returns the logged-in user and whether there is one.
func (s *Session) Profile() (api.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, s.token != ""
}

func (s *Session) set(token string, p api.Profile) {
	s.mu.Lock()
	s.token = token
	s.profile = p
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.set("", api.Profile{})
}
