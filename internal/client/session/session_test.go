package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "token")
}

func TestSetPersistsAndReloads(t *testing.T) {
	path := tokenPath(t)

	m := NewManagerAt(path)
	require.NoError(t, m.Set("tok-abc", "admin@example.org"))
	assert.True(t, m.LoggedIn())
	assert.Equal(t, "tok-abc", m.Token())
	assert.Equal(t, "admin@example.org", m.Email())

	// A fresh manager at the same path picks the token back up.
	m2 := NewManagerAt(path)
	assert.Equal(t, "tok-abc", m2.Token())
}

func TestClearRemovesTokenFile(t *testing.T) {
	path := tokenPath(t)
	m := NewManagerAt(path)
	require.NoError(t, m.Set("tok", ""))

	require.NoError(t, m.Clear())
	assert.False(t, m.LoggedIn())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-cleared session is not an error.
	require.NoError(t, m.Clear())
}

func TestInvalidate_FiresListenerOncePerSession(t *testing.T) {
	m := NewManagerAt(tokenPath(t))
	require.NoError(t, m.Set("tok", ""))

	calls := 0
	m.OnExpired(func() { calls++ })

	m.Invalidate()
	m.Invalidate() // second 401 for the same dead session

	assert.Equal(t, 1, calls)
	assert.False(t, m.LoggedIn())
}

func TestInvalidate_WithoutSessionIsSilent(t *testing.T) {
	m := NewManagerAt(tokenPath(t))
	calls := 0
	m.OnExpired(func() { calls++ })
	m.Invalidate()
	assert.Zero(t, calls)
}
