package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) printToken(token string, expiresIn string) {
	fmt.Fprintf(a.out, "Token: %s\n", token)
	if expiresIn != "" {
		fmt.Fprintf(a.out, "Expires in: %s\n", expiresIn)
	}
}

// TokenFor generates an API token for another user by email.
func (a *App) TokenFor(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) != 1 {
		printlnFn("Usage: token <email>")
		return fmt.Errorf("usage: token <email>")
	}

	t, err := a.store.GenerateTokenFor(ctx, args[0])
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.printToken(t.Token, t.ExpiresIn)
	return nil
}

// MyToken generates a fresh API token for the logged-in user.
func (a *App) MyToken(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	t, err := a.store.GenerateMyToken(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.printToken(t.Token, t.ExpiresIn)
	return nil
}
