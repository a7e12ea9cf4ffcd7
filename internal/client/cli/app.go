package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrijs2005/useradmin/internal/client/api"
	"github.com/dmitrijs2005/useradmin/internal/client/config"
	"github.com/dmitrijs2005/useradmin/internal/client/query"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// authClient is the slice of the API the login flow needs directly;
// everything else goes through the query store.
type authClient interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
}

// userStore is the query-store surface the commands depend on. The concrete
// *query.Store satisfies it; tests provide fakes.
type userStore interface {
	Users(ctx context.Context, filters api.UserFilters) ([]api.User, error)
	User(ctx context.Context, id int64) (*api.User, error)
	CreateUser(ctx context.Context, req api.CreateUserRequest) (*api.User, error)
	UpdateUser(ctx context.Context, id int64, req api.CreateUserRequest) (*api.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ActivateUser(ctx context.Context, id int64) (*api.User, error)
	DeactivateUser(ctx context.Context, id int64) (*api.User, error)
	Stats(ctx context.Context) (*api.UserStats, error)
	ActiveUsers(ctx context.Context) ([]api.User, error)
	InactiveUsers(ctx context.Context) ([]api.User, error)
	UsersByAgeRange(ctx context.Context, minAge, maxAge int) ([]api.User, error)
	GenerateTokenFor(ctx context.Context, email string) (*api.GeneratedToken, error)
	GenerateMyToken(ctx context.Context) (*api.GeneratedToken, error)
	Health(ctx context.Context) (*api.Health, error)
	Reset()
}

type App struct {
	config *config.Config
	auth   authClient
	store  userStore
	sess   *session.Manager
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
}

// NewApp wires the full client stack: session manager, HTTP client with the
// 401 hook, query store with CLI notifications.
func NewApp(c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	sess := session.NewManager()

	apiClient := api.NewHTTPClient(c.APIBaseURL, sess, &http.Client{Timeout: c.HTTPTimeout})
	apiClient.OnUnauthorized(sess.Invalidate)

	app := &App{
		config: c,
		auth:   apiClient,
		sess:   sess,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		log:    log,
	}

	store := query.NewStore(apiClient, &toastNotifier{out: app.out}, log)
	app.store = store

	// Expired session: flush cached data and fall back to the login prompt.
	sess.OnExpired(func() {
		store.Reset()
		printlnFn("Session expired, please log in again.")
	})

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.sess.LoggedIn()
}

// getStatus renders the prompt decoration: the session email when known,
// "guest" otherwise.
func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "guest"
	}
	if email := a.sess.Email(); email != "" {
		return email
	}
	return "logged in"
}

// Run starts the stats poller and the REPL; it blocks until the user exits
// or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	if s, ok := a.store.(*query.Store); ok {
		go s.StartStatsPoller(ctx, a.config.StatsPollInterval, a.isLoggedIn)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
