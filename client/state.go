package client

import (
	"sync"

	"github.com/rpupo63/blog-platform-backend/models"
)

// Session is the shared state the client units read and update
type Session interface {
	TokenSource
	User() *models.User
	SignIn(user *models.User, token string)
	SignOut()
	AuthFormOpen() bool
	SetAuthFormOpen(open bool)
}

// AppState holds the signed-in user, the token and whether the auth form is showing
type AppState struct {
	mu           sync.RWMutex
	user         *models.User
	token        string
	authFormOpen bool
}

func NewAppState() *AppState {
	return &AppState{}
}

func (s *AppState) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil
func (s *AppState) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// SignIn stores the session and closes the auth form
func (s *AppState) SignIn(user *models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
	s.authFormOpen = false
}

func (s *AppState) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

func (s *AppState) AuthFormOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authFormOpen
}

func (s *AppState) SetAuthFormOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authFormOpen = open
}
