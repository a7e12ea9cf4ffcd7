// Package viewmodel contains pure functions that turn cached entities into
// display values: dashboard aggregates and client-side filter evaluation.
// Nothing here is cached or persisted; results are recomputed on every input
// change.
package viewmodel

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/api"
)

// StatusBucket is one slice of the status-distribution chart.
type StatusBucket struct {
	Name    string
	Count   int64
	Percent int
	Color   string
}

// Chart colors for the status distribution.
const (
	activeColor   = "#48BB78"
	inactiveColor = "#F56565"
)

// StatusDistribution converts a stats snapshot into active/inactive buckets
// with display percentages. With zero users both percentages are 0; there is
// no division at all in that case.
func StatusDistribution(stats api.UserStats) []StatusBucket {
	percent := func(n int64) int {
		if stats.TotalUsers == 0 {
			return 0
		}
		return int(float64(n)/float64(stats.TotalUsers)*100 + 0.5)
	}
	return []StatusBucket{
		{Name: "Active", Count: stats.ActiveUsers, Percent: percent(stats.ActiveUsers), Color: activeColor},
		{Name: "Inactive", Count: stats.InactiveUsers, Percent: percent(stats.InactiveUsers), Color: inactiveColor},
	}
}

// AgeBucket is one bar of the age histogram.
type AgeBucket struct {
	Name     string
	Min, Max int
	Count    int
}

// ageBuckets returns the fixed histogram layout. The ranges are inclusive
// and partition [0,120]; a user lands in the first bucket containing their
// age.
func ageBuckets() []AgeBucket {
	return []AgeBucket{
		{Name: "< 18", Min: 0, Max: 17},
		{Name: "18-24", Min: 18, Max: 24},
		{Name: "25-34", Min: 25, Max: 34},
		{Name: "35-44", Min: 35, Max: 44},
		{Name: "45-54", Min: 45, Max: 54},
		{Name: "55+", Min: 55, Max: 120},
	}
}

// AgeHistogram partitions users into the fixed age buckets. Every bucket is
// present in the output, in fixed order, even when empty.
func AgeHistogram(users []api.User) []AgeBucket {
	buckets := ageBuckets()
	for _, u := range users {
		for i := range buckets {
			if u.Age >= buckets[i].Min && u.Age <= buckets[i].Max {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// RecentSignups counts users created within the last 7 days of now,
// inclusive at the lower bound. Timestamps are parsed as RFC 3339 instants;
// unparseable values are skipped.
func RecentSignups(users []api.User, now time.Time) int {
	cutoff := now.AddDate(0, 0, -7)
	count := 0
	for _, u := range users {
		createdAt, err := time.Parse(time.RFC3339, u.CreatedAt)
		if err != nil {
			continue
		}
		if !createdAt.Before(cutoff) {
			count++
		}
	}
	return count
}

// HasActiveFilters reports whether any filter field is set. Drives the
// "filters applied" affordance and the clear-filters action.
func HasActiveFilters(f api.UserFilters) bool {
	return f.Name != nil || f.MinAge != nil || f.MaxAge != nil || f.Active != nil
}

// ApplyFilters returns the subset of users matching f. Name matches as a
// case-insensitive substring; age bounds are inclusive. Unset fields do not
// constrain.
func ApplyFilters(users []api.User, f api.UserFilters) []api.User {
	result := make([]api.User, 0, len(users))
	for _, u := range users {
		if f.Name != nil && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(*f.Name)) {
			continue
		}
		if f.MinAge != nil && u.Age < *f.MinAge {
			continue
		}
		if f.MaxAge != nil && u.Age > *f.MaxAge {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		result = append(result, u)
	}
	return result
}
