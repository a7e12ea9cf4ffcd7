package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/useradmin/internal/client/api"
	"github.com/dmitrijs2005/useradmin/internal/client/viewmodel"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

const (
	// Freshness windows. Within the window reads are served from cache
	// without touching the network.
	listFreshFor  = 5 * time.Minute
	statsFreshFor = 2 * time.Minute

	// StatsPollInterval is how often stats are refreshed unconditionally
	// while the poller runs, keeping dashboard numbers current.
	StatsPollInterval = 30 * time.Second

	refreshTimeout = 15 * time.Second
	readRetryWait  = 250 * time.Millisecond
)

const genericErrorMessage = "An unexpected error occurred."

// Store is the query/mutation orchestration layer: it owns the cache and is
// the only path between the UI and the remote client.
type Store struct {
	client   api.Client
	cache    *Cache
	group    singleflight.Group
	notifier Notifier
	log      logging.Logger

	listTTL  time.Duration
	statsTTL time.Duration

	background sync.WaitGroup
}

// NewStore builds a Store over client. A nil notifier discards
// notifications; a nil logger falls back to slog's default.
func NewStore(client api.Client, notifier Notifier, log logging.Logger) *Store {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = logging.NewSlogLogger(slog.Default())
	}
	return &Store{
		client:   client,
		cache:    NewCache(),
		notifier: notifier,
		log:      log,
		listTTL:  listFreshFor,
		statsTTL: statsFreshFor,
	}
}

// Reset drops all cached state. Called on logout and session invalidation.
func (s *Store) Reset() {
	s.cache.Reset()
}

// fetchWithRetry runs fetch, retrying exactly once when the server was
// unreachable. Backend-reported errors are never retried.
func fetchWithRetry[T any](ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	var val T
	b := retry.WithMaxRetries(1, retry.NewConstant(readRetryWait))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		v, err := fetch(ctx)
		if err != nil {
			if errors.Is(err, common.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		val = v
		return nil
	})
	return val, err
}

// read implements the shared read path: fresh hit, stale hit with background
// refresh, or deduplicated fetch on a miss.
func read[T any](ctx context.Context, s *Store, key Key, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok, fresh := s.cache.Get(key, ttl); ok {
		if !fresh {
			refreshAsync(s, key, fetch)
		}
		return v.(T), nil
	}

	v, err, _ := s.group.Do(key.String(), func() (any, error) {
		gen := s.cache.Begin(key)
		val, err := fetchWithRetry(ctx, fetch)
		if err != nil {
			return nil, err
		}
		s.cache.Commit(key, gen, val)
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// refreshAsync refetches key in the background and replaces the entry on
// success. The refresh is detached from the caller's context: leaving the
// view that triggered it must not abort the request, and the generation
// check in Commit keeps a superseded result from being applied.
func refreshAsync[T any](s *Store, key Key, fetch func(context.Context) (T, error)) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		_, _, _ = s.group.Do(key.String(), func() (any, error) {
			gen := s.cache.Begin(key)
			val, err := fetchWithRetry(ctx, fetch)
			if err != nil {
				s.log.Warn(ctx, "background refresh failed", "key", key.String(), "error", err)
				return nil, err
			}
			if !s.cache.Commit(key, gen, val) {
				s.log.Debug(ctx, "discarding superseded refresh result", "key", key.String())
			}
			return val, nil
		})
	}()
}

// Users returns the user list for the given filters. Name and age bounds are
// evaluated by the backend; the active flag is applied here because the
// search endpoint does not accept it.
func (s *Store) Users(ctx context.Context, filters api.UserFilters) ([]api.User, error) {
	return read(ctx, s, ListKey(filters), s.listTTL, func(ctx context.Context) ([]api.User, error) {
		users, err := s.client.Users(ctx, filters)
		if err != nil {
			return nil, err
		}
		if filters.Active != nil {
			users = viewmodel.ApplyFilters(users, api.UserFilters{Active: filters.Active})
		}
		return users, nil
	})
}

// User returns a single user by id.
func (s *Store) User(ctx context.Context, id int64) (*api.User, error) {
	return read(ctx, s, DetailKey(id), s.listTTL, func(ctx context.Context) (*api.User, error) {
		return s.client.User(ctx, id)
	})
}

// Stats returns the aggregate snapshot.
func (s *Store) Stats(ctx context.Context) (*api.UserStats, error) {
	return read(ctx, s, StatsKey(), s.statsTTL, func(ctx context.Context) (*api.UserStats, error) {
		return s.client.Stats(ctx)
	})
}

// ActiveUsers returns the active subset.
func (s *Store) ActiveUsers(ctx context.Context) ([]api.User, error) {
	return read(ctx, s, ActiveKey(), s.listTTL, func(ctx context.Context) ([]api.User, error) {
		return s.client.ActiveUsers(ctx)
	})
}

// InactiveUsers returns the inactive subset.
func (s *Store) InactiveUsers(ctx context.Context) ([]api.User, error) {
	return read(ctx, s, InactiveKey(), s.listTTL, func(ctx context.Context) ([]api.User, error) {
		return s.client.InactiveUsers(ctx)
	})
}

// UsersByAgeRange returns users within [minAge, maxAge], cached under the
// list scope so mutations invalidate it with the other collections.
func (s *Store) UsersByAgeRange(ctx context.Context, minAge, maxAge int) ([]api.User, error) {
	return read(ctx, s, AgeRangeKey(minAge, maxAge), s.listTTL, func(ctx context.Context) ([]api.User, error) {
		return s.client.UsersByAgeRange(ctx, minAge, maxAge)
	})
}

// invalidateCollections marks every list-scoped and stats-scoped entry
// stale so the next read refetches.
func (s *Store) invalidateCollections() {
	for _, scope := range collectionScopes {
		s.cache.MarkScopeStale(scope)
	}
}

// CreateUser creates a user and invalidates the collections on success.
func (s *Store) CreateUser(ctx context.Context, req api.CreateUserRequest) (*api.User, error) {
	u, err := s.client.CreateUser(ctx, req)
	if err != nil {
		s.notifier.Error("Failed to create user", api.UserMessage(err, genericErrorMessage))
		return nil, err
	}
	s.invalidateCollections()
	s.notifier.Success("User created", fmt.Sprintf("%s was added to the system.", u.Name))
	return u, nil
}

// UpdateUser updates a user. On success the detail entry is overwritten with
// the server's representation, avoiding a redundant refetch, and the
// collections are invalidated.
func (s *Store) UpdateUser(ctx context.Context, id int64, req api.CreateUserRequest) (*api.User, error) {
	u, err := s.client.UpdateUser(ctx, id, req)
	if err != nil {
		s.notifier.Error("Failed to update user", api.UserMessage(err, genericErrorMessage))
		return nil, err
	}
	s.applyUserMutation(u)
	s.notifier.Success("User updated", fmt.Sprintf("%s's details were updated.", u.Name))
	return u, nil
}

// DeleteUser deletes a user. The detail entry is evicted outright; the
// entity no longer exists, so even a stale copy must not be served.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		s.notifier.Error("Failed to delete user", api.UserMessage(err, genericErrorMessage))
		return err
	}
	s.cache.Evict(DetailKey(id))
	s.invalidateCollections()
	s.notifier.Success("User deleted", "")
	return nil
}

// ActivateUser activates a user.
func (s *Store) ActivateUser(ctx context.Context, id int64) (*api.User, error) {
	u, err := s.client.ActivateUser(ctx, id)
	if err != nil {
		s.notifier.Error("Failed to activate user", api.UserMessage(err, genericErrorMessage))
		return nil, err
	}
	s.applyUserMutation(u)
	s.notifier.Success("User activated", fmt.Sprintf("%s was activated.", u.Name))
	return u, nil
}

// DeactivateUser deactivates a user.
func (s *Store) DeactivateUser(ctx context.Context, id int64) (*api.User, error) {
	u, err := s.client.DeactivateUser(ctx, id)
	if err != nil {
		s.notifier.Error("Failed to deactivate user", api.UserMessage(err, genericErrorMessage))
		return nil, err
	}
	s.applyUserMutation(u)
	s.notifier.Success("User deactivated", fmt.Sprintf("%s was deactivated.", u.Name))
	return u, nil
}

func (s *Store) applyUserMutation(u *api.User) {
	s.cache.Overwrite(DetailKey(u.ID), u)
	s.invalidateCollections()
}

// GenerateTokenFor asks the backend to issue a token for another user's
// email (admin operation; authorization is enforced server-side).
func (s *Store) GenerateTokenFor(ctx context.Context, email string) (*api.GeneratedToken, error) {
	tok, err := s.client.GenerateTokenFor(ctx, email)
	if err != nil {
		s.notifier.Error("Failed to generate token", api.UserMessage(err, genericErrorMessage))
		return nil, err
	}
	s.notifier.Success("Token generated", fmt.Sprintf("Token for %s is ready.", email))
	return tok, nil
}

// GenerateMyToken issues a token for the current session's user.
func (s *Store) GenerateMyToken(ctx context.Context) (*api.GeneratedToken, error) {
	tok, err := s.client.GenerateMyToken(ctx)
	if err != nil {
		s.notifier.Error("Failed to generate token", api.UserMessage(err, genericErrorMessage))
		return nil, err
	}
	s.notifier.Success("Token generated", "Your new token is ready to use.")
	return tok, nil
}

// Health is an uncached passthrough; the report is point-in-time by nature.
func (s *Store) Health(ctx context.Context) (*api.Health, error) {
	return s.client.Health(ctx)
}

// StartStatsPoller refreshes the stats entry every interval until ctx is
// canceled, regardless of staleness. Ticks are skipped while active reports
// false, so a logged-out client does not hammer the backend with requests
// that can only fail; a nil active polls unconditionally. Run it in its own
// goroutine.
func (s *Store) StartStatsPoller(ctx context.Context, interval time.Duration, active func() bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if active != nil && !active() {
				continue
			}
			refreshAsync(s, StatsKey(), func(ctx context.Context) (*api.UserStats, error) {
				return s.client.Stats(ctx)
			})
		case <-ctx.Done():
			return
		}
	}
}

// waitBackground blocks until in-flight background refreshes finish.
// Test helper.
func (s *Store) waitBackground() {
	s.background.Wait()
}
