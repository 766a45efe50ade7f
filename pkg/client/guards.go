package client

import "runtime"

// Navigation targets used by the guards.
const (
	LoginPage = "/login"
	HomePage  = "/"
)

// RequireAuth guards a protected page. It returns the redirect target,
// or "" when navigation may proceed. When live state says
// unauthenticated it falls back to re-initializing from storage, and
// re-checks once more after yielding so a restore racing on another
// goroutine gets a chance to land before the redirect is final.
func (s *Session) RequireAuth() string {
	if s.IsAuthenticated() && s.CurrentToken() != "" {
		return ""
	}

	if s.InitAuth() && s.IsAuthenticated() {
		return ""
	}

	runtime.Gosched()
	if s.IsAuthenticated() && s.CurrentToken() != "" {
		return ""
	}
	return LoginPage
}

// RequireGuest guards a guest-only page (login, register). An active
// session is sent home; otherwise navigation may proceed.
func (s *Session) RequireGuest() string {
	if !s.IsAuthenticated() {
		s.InitAuth()
	}
	if s.IsAuthenticated() && s.CurrentToken() != "" {
		return HomePage
	}
	return ""
}
