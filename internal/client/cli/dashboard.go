package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/api"
	"github.com/dmitrijs2005/useradmin/internal/client/viewmodel"
)

// bar renders a crude horizontal bar scaled to width characters.
func bar(count, max, width int) string {
	if max <= 0 || count <= 0 {
		return ""
	}
	n := count * width / max
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

// Dashboard prints the stats summary, the status distribution, the age
// histogram, and the recent-signup count.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	stats, err := a.store.Stats(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	users, err := a.store.Users(ctx, api.UserFilters{})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Fprintf(a.out, "Total users:    %d\n", stats.TotalUsers)
	fmt.Fprintf(a.out, "Active users:   %d\n", stats.ActiveUsers)
	fmt.Fprintf(a.out, "Inactive users: %d\n", stats.InactiveUsers)
	fmt.Fprintf(a.out, "Recent signups: %d (last 7 days)\n", viewmodel.RecentSignups(users, time.Now()))

	fmt.Fprintln(a.out, "\nStatus distribution:")
	for _, b := range viewmodel.StatusDistribution(*stats) {
		fmt.Fprintf(a.out, "  %-8s %3d%% (%d)\n", b.Name, b.Percent, b.Count)
	}

	fmt.Fprintln(a.out, "\nAge histogram:")
	hist := viewmodel.AgeHistogram(users)
	max := 0
	for _, b := range hist {
		if b.Count > max {
			max = b.Count
		}
	}
	for _, b := range hist {
		fmt.Fprintf(a.out, "  %-7s %4d %s\n", b.Name, b.Count, bar(b.Count, max, 40))
	}
	return nil
}
