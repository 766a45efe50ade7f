package client

import (
	"encoding/json"
	"net/http"
	"sync"

	"portfolio/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// AuthResult is the uniform outcome of login and register. Failures are
// reported here rather than as errors, so callers branch on Success.
type AuthResult struct {
	Success bool
	Message string
	Token   string
}

// Default failure messages, carried over from the original frontend.
const (
	loginFailedMessage    = "Erro ao fazer login"
	registerFailedMessage = "Erro ao registrar usuário"
)

// Session holds the current user and token, shared by every consumer of
// the client. It moves between exactly two states: unauthenticated and
// authenticated.
type Session struct {
	client *Client
	store  CredentialStore // may be nil

	mu    sync.RWMutex
	user  *models.PublicUser
	token string
}

// NewSession creates a session over the given transport. store is the
// client-local persistent storage; pass nil when none is available.
func NewSession(client *Client, store CredentialStore) *Session {
	return &Session{
		client: client,
		store:  store,
	}
}

type authResponse struct {
	Success bool               `json:"success"`
	User    *models.PublicUser `json:"user"`
	Message string             `json:"message"`
	Token   string             `json:"token"`
}

// Login authenticates against the API. On success the session becomes
// authenticated and the credentials are mirrored into storage; on any
// failure the session state is left untouched.
func (s *Session) Login(email, senha string) AuthResult {
	var resp authResponse
	status, err := s.client.doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email,
		"senha": senha,
	}, &resp)
	if err != nil || status != http.StatusOK || !resp.Success || resp.User == nil || resp.Token == "" {
		return AuthResult{Success: false, Message: loginFailedMessage}
	}

	s.save(resp.User, resp.Token)
	return AuthResult{Success: true, Message: resp.Message, Token: resp.Token}
}

// Register creates an account and, like Login, authenticates the
// session on success.
func (s *Session) Register(nome, email, senha string) AuthResult {
	var resp authResponse
	status, err := s.client.doJSON(http.MethodPost, "/api/auth/register", "", map[string]string{
		"nome":  nome,
		"email": email,
		"senha": senha,
	}, &resp)
	if err != nil || status != http.StatusCreated || !resp.Success || resp.User == nil || resp.Token == "" {
		return AuthResult{Success: false, Message: registerFailedMessage}
	}

	s.save(resp.User, resp.Token)
	return AuthResult{Success: true, Message: resp.Message, Token: resp.Token}
}

// Logout clears the session state and storage. Idempotent.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if s.store != nil {
		s.store.Delete(TokenKey)
		s.store.Delete(UserKey)
	}
}

// InitAuth attempts to restore a session from storage. A stored token
// that fails validation restores nothing; the stale entries are left in
// place and the session stays unauthenticated.
func (s *Session) InitAuth() bool {
	if s.store == nil {
		return false
	}

	savedToken, okToken := s.store.Get(TokenKey)
	savedUser, okUser := s.store.Get(UserKey)
	if !okToken || !okUser {
		return false
	}
	if !ValidateToken(savedToken) {
		return false
	}

	var user models.PublicUser
	if err := json.Unmarshal([]byte(savedUser), &user); err != nil {
		return false
	}

	s.mu.Lock()
	s.user = &user
	s.token = savedToken
	s.mu.Unlock()
	return true
}

// ValidateToken is a pure local check on a session token, no network
// call: the token must parse as a well-formed JWT. Whether the
// signature actually verifies is the server's business.
func ValidateToken(token string) bool {
	parser := &jwt.Parser{}
	_, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	return err == nil
}

// IsAuthenticated is true iff both user and token are held.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// CurrentToken returns the held token, or "" when unauthenticated.
func (s *Session) CurrentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CurrentUser returns a copy of the held user, or nil when
// unauthenticated.
func (s *Session) CurrentUser() *models.PublicUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *Session) save(user *models.PublicUser, token string) {
	if s.store != nil {
		serialized, err := json.Marshal(user)
		if err == nil {
			s.store.Set(TokenKey, token)
			s.store.Set(UserKey, string(serialized))
		}
	}
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
}
