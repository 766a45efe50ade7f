package client_test

import (
	"path/filepath"
	"testing"

	"portfolio/pkg/client"

	"github.com/stretchr/testify/assert"
)

func TestFileCredentialStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := client.NewFileCredentialStore(path)

	// Empty store.
	_, ok := store.Get(client.TokenKey)
	assert.False(t, ok)

	// Set and get both keys.
	assert.NoError(t, store.Set(client.TokenKey, "some-token"))
	assert.NoError(t, store.Set(client.UserKey, `{"id":"1"}`))

	token, ok := store.Get(client.TokenKey)
	assert.True(t, ok)
	assert.Equal(t, "some-token", token)

	// Values survive a reopen.
	reopened := client.NewFileCredentialStore(path)
	user, ok := reopened.Get(client.UserKey)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"1"}`, user)

	// Delete is idempotent.
	assert.NoError(t, store.Delete(client.TokenKey))
	_, ok = store.Get(client.TokenKey)
	assert.False(t, ok)
	assert.NoError(t, store.Delete(client.TokenKey))
}
