package cli

import (
	"context"
	"log"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, authenticates against the backend, and
// establishes the session: the issued token is stored (and persisted) and
// any cached data from a previous session is flushed.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	resp, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	if err := a.sess.Set(resp.Token, email); err != nil {
		log.Printf("warning: could not persist session: %v", err)
	}
	a.store.Reset()

	printlnFn("Login successful")
	return nil
}

// Logout drops the session token and flushes all cached data.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sess.Clear(); err != nil {
		return err
	}
	a.store.Reset()
	printlnFn("Logged out")
	return nil
}

// requireLogin guards commands that need a session.
func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	printlnFn("Please log in first (type 'login')")
	return false
}
