package cli

import (
	"context"
	"fmt"
	"log"
)

// Health reports backend health. Works without a session.
func (a *App) Health(ctx context.Context) error {
	h, err := a.store.Health(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		printlnFn("Backend is unreachable")
		return err
	}

	fmt.Fprintf(a.out, "Status:   %s\n", h.Status)
	fmt.Fprintf(a.out, "Database: %s", h.Database.Status)
	if h.Database.Message != "" {
		fmt.Fprintf(a.out, " (%s)", h.Database.Message)
	}
	fmt.Fprintln(a.out)
	if h.Application.Status != "" {
		fmt.Fprintf(a.out, "App:      %s (%d users)\n", h.Application.Status, h.Application.TotalUsers)
	}
	if h.Timestamp != "" {
		fmt.Fprintf(a.out, "Checked:  %s\n", h.Timestamp)
	}
	return nil
}
