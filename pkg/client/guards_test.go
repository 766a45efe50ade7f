package client_test

import (
	"encoding/json"
	"testing"

	"portfolio/pkg/client"

	"github.com/stretchr/testify/assert"
)

func TestRequireAuthRedirectsWithoutSession(t *testing.T) {
	api := startServer(t)
	session := client.NewSession(api, newCredentialStore(t))

	assert.Equal(t, client.LoginPage, session.RequireAuth())
}

func TestRequireAuthAllowsActiveSession(t *testing.T) {
	api := startServer(t)
	session := client.NewSession(api, newCredentialStore(t))

	result := session.Register("Guard User", "guard@example.com", "password123")
	assert.True(t, result.Success)

	assert.Equal(t, "", session.RequireAuth())
}

func TestRequireAuthRestoresFromStorage(t *testing.T) {
	api := startServer(t)
	store := newCredentialStore(t)

	token := signedTestToken(t)
	user, _ := json.Marshal(map[string]string{
		"id": "user-123", "nome": "Stored User", "email": "stored@example.com",
	})
	assert.NoError(t, store.Set(client.TokenKey, token))
	assert.NoError(t, store.Set(client.UserKey, string(user)))

	// A fresh session holds nothing live; the guard falls back to the
	// stored credentials before deciding.
	session := client.NewSession(api, store)
	assert.Equal(t, "", session.RequireAuth())
	assert.True(t, session.IsAuthenticated())
}

func TestRequireGuestRedirectsActiveSession(t *testing.T) {
	api := startServer(t)
	session := client.NewSession(api, newCredentialStore(t))

	result := session.Register("Guest User", "guest@example.com", "password123")
	assert.True(t, result.Success)

	assert.Equal(t, client.HomePage, session.RequireGuest())
}

func TestRequireGuestAllowsWithoutSession(t *testing.T) {
	api := startServer(t)
	session := client.NewSession(api, newCredentialStore(t))

	assert.Equal(t, "", session.RequireGuest())
}
