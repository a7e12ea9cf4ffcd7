// Package session owns the client's bearer token: an in-memory copy for
// request signing plus a file under the user config dir so a restarted CLI
// keeps its session. The token is opaque; it is stored and attached, never
// parsed.
package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	appDirName    = "useradmin"
	tokenFileName = "token"
)

// Manager holds the current session token and notifies a single listener
// when the session is invalidated (expired token, explicit logout).
type Manager struct {
	mu        sync.Mutex
	token     string
	email     string
	path      string
	onExpired func()
}

// NewManager loads any persisted token from the user config dir. A missing
// or unreadable token file just means "not logged in".
func NewManager() *Manager {
	m := &Manager{}

	dir, err := os.UserConfigDir()
	if err != nil {
		return m
	}
	m.path = filepath.Join(dir, appDirName, tokenFileName)

	data, err := os.ReadFile(m.path)
	if err != nil {
		return m
	}
	m.token = strings.TrimSpace(string(data))
	return m
}

// NewManagerAt is like NewManager but stores the token file at path.
// Used in tests.
func NewManagerAt(path string) *Manager {
	m := &Manager{path: path}
	if data, err := os.ReadFile(path); err == nil {
		m.token = strings.TrimSpace(string(data))
	}
	return m
}

// OnExpired registers fn to run when the session is invalidated by the
// backend. It fires at most once per established session.
func (m *Manager) OnExpired(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpired = fn
}

// Token returns the current bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Email returns the email the session was established for, when known.
func (m *Manager) Email() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email
}

// LoggedIn reports whether a token is present.
func (m *Manager) LoggedIn() bool {
	return m.Token() != ""
}

// Set stores the token in memory and persists it. Persistence failures are
// returned but the in-memory session is established regardless.
func (m *Manager) Set(token, email string) error {
	m.mu.Lock()
	m.token = token
	m.email = email
	path := m.path
	m.mu.Unlock()

	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// Clear wipes the session from memory and disk. Safe to call repeatedly.
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.token = ""
	m.email = ""
	path := m.path
	m.mu.Unlock()

	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Invalidate handles a backend 401: clears the session and fires the
// expiry listener once. Concurrent 401s (e.g. an interactive call racing a
// background stats refresh) collapse to a single notification.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	hadToken := m.token != ""
	m.token = ""
	m.email = ""
	path := m.path
	fn := m.onExpired
	m.mu.Unlock()

	if path != "" {
		_ = os.Remove(path)
	}
	if hadToken && fn != nil {
		fn()
	}
}
