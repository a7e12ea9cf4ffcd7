package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/useradmin/internal/client/api"
)

// fakeStore records calls and serves canned data. It satisfies userStore.
type fakeStore struct {
	users       []api.User
	user        *api.User
	stats       *api.UserStats
	token       *api.GeneratedToken
	health      *api.Health
	err         error
	resetCalled bool

	lastFilters api.UserFilters
	lastID      int64
	lastReq     api.CreateUserRequest
	lastEmail   string
	lastMin     int
	lastMax     int
	calls       []string
}

func (f *fakeStore) Users(_ context.Context, filters api.UserFilters) ([]api.User, error) {
	f.calls = append(f.calls, "users")
	f.lastFilters = filters
	return f.users, f.err
}
func (f *fakeStore) User(_ context.Context, id int64) (*api.User, error) {
	f.calls = append(f.calls, "user")
	f.lastID = id
	return f.user, f.err
}
func (f *fakeStore) CreateUser(_ context.Context, req api.CreateUserRequest) (*api.User, error) {
	f.calls = append(f.calls, "create")
	f.lastReq = req
	return f.user, f.err
}
func (f *fakeStore) UpdateUser(_ context.Context, id int64, req api.CreateUserRequest) (*api.User, error) {
	f.calls = append(f.calls, "update")
	f.lastID, f.lastReq = id, req
	return f.user, f.err
}
func (f *fakeStore) DeleteUser(_ context.Context, id int64) error {
	f.calls = append(f.calls, "delete")
	f.lastID = id
	return f.err
}
func (f *fakeStore) ActivateUser(_ context.Context, id int64) (*api.User, error) {
	f.calls = append(f.calls, "activate")
	f.lastID = id
	return f.user, f.err
}
func (f *fakeStore) DeactivateUser(_ context.Context, id int64) (*api.User, error) {
	f.calls = append(f.calls, "deactivate")
	f.lastID = id
	return f.user, f.err
}
func (f *fakeStore) Stats(_ context.Context) (*api.UserStats, error) {
	f.calls = append(f.calls, "stats")
	return f.stats, f.err
}
func (f *fakeStore) ActiveUsers(_ context.Context) ([]api.User, error) {
	f.calls = append(f.calls, "active")
	return f.users, f.err
}
func (f *fakeStore) InactiveUsers(_ context.Context) ([]api.User, error) {
	f.calls = append(f.calls, "inactive")
	return f.users, f.err
}
func (f *fakeStore) UsersByAgeRange(_ context.Context, minAge, maxAge int) ([]api.User, error) {
	f.calls = append(f.calls, "agerange")
	f.lastMin, f.lastMax = minAge, maxAge
	return f.users, f.err
}
func (f *fakeStore) GenerateTokenFor(_ context.Context, email string) (*api.GeneratedToken, error) {
	f.calls = append(f.calls, "tokenfor")
	f.lastEmail = email
	return f.token, f.err
}
func (f *fakeStore) GenerateMyToken(_ context.Context) (*api.GeneratedToken, error) {
	f.calls = append(f.calls, "mytoken")
	return f.token, f.err
}
func (f *fakeStore) Health(_ context.Context) (*api.Health, error) {
	f.calls = append(f.calls, "health")
	return f.health, f.err
}
func (f *fakeStore) Reset() { f.resetCalled = true }

func loggedInApp(t *testing.T, store *fakeStore, input string) (*App, *bytes.Buffer) {
	t.Helper()
	sess := testSession(t)
	require.NoError(t, sess.Set("tok", "admin@example.org"))
	out := &bytes.Buffer{}
	return &App{
		store:  store,
		sess:   sess,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}

func TestParseFilters(t *testing.T) {
	f, err := parseFilters([]string{"name=ann", "minage=18", "maxage=24", "active=true"})
	require.NoError(t, err)
	require.NotNil(t, f.Name)
	assert.Equal(t, "ann", *f.Name)
	require.NotNil(t, f.MinAge)
	assert.Equal(t, 18, *f.MinAge)
	require.NotNil(t, f.MaxAge)
	assert.Equal(t, 24, *f.MaxAge)
	require.NotNil(t, f.Active)
	assert.True(t, *f.Active)

	empty, err := parseFilters(nil)
	require.NoError(t, err)
	assert.Nil(t, empty.Name)
	assert.Nil(t, empty.MinAge)
	assert.Nil(t, empty.MaxAge)
	assert.Nil(t, empty.Active)

	_, err = parseFilters([]string{"minage=abc"})
	assert.Error(t, err)
	_, err = parseFilters([]string{"bogus=1"})
	assert.Error(t, err)
	_, err = parseFilters([]string{"noequals"})
	assert.Error(t, err)
}

func TestList_PassesFiltersAndPrintsAffordance(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{users: []api.User{
		{ID: 1, Name: "Ann Lee", Email: "ann@example.org", Age: 22, Active: true},
	}}
	a, out := loggedInApp(t, store, "")

	require.NoError(t, a.List(context.Background(), []string{"name=ann"}))

	require.NotNil(t, store.lastFilters.Name)
	assert.Equal(t, "ann", *store.lastFilters.Name)
	assert.Contains(t, out.String(), "Ann Lee")
	assert.Contains(t, out.String(), "filters applied")
}

func TestList_NoAffordanceWithoutFilters(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{users: []api.User{{ID: 1, Name: "Ann", Email: "a@b.co", Age: 22, Active: true}}}
	a, out := loggedInApp(t, store, "")

	require.NoError(t, a.List(context.Background(), nil))
	assert.NotContains(t, out.String(), "filters applied")
}

func TestList_RequiresLogin(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{}
	a := &App{store: store, sess: testSession(t), out: io.Discard}

	require.NoError(t, a.List(context.Background(), nil))
	assert.Empty(t, store.calls)
}

func TestGet_PrintsDetail(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{user: &api.User{
		ID: 7, Name: "Ann", Email: "ann@example.org", Phone: "(11) 91234-5678",
		Age: 22, Active: true, CreatedAt: "2026-08-01T00:00:00Z",
	}}
	a, out := loggedInApp(t, store, "")

	require.NoError(t, a.Get(context.Background(), []string{"7"}))
	assert.Equal(t, int64(7), store.lastID)
	assert.Contains(t, out.String(), "ann@example.org")
	assert.Contains(t, out.String(), "(11) 91234-5678")
}

func TestGet_BadID(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{}
	a, _ := loggedInApp(t, store, "")

	assert.Error(t, a.Get(context.Background(), []string{"seven"}))
	assert.Error(t, a.Get(context.Background(), nil))
	assert.Empty(t, store.calls)
}

func TestCreate_SubmitsValidForm(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{user: &api.User{ID: 1}}
	// name, email, phone, age, active
	a, _ := loggedInApp(t, store, "Ann Lee\nann@example.org\n\n22\ny\n")

	require.NoError(t, a.Create(context.Background()))
	require.Contains(t, store.calls, "create")
	assert.Equal(t, "Ann Lee", store.lastReq.Name)
	assert.Equal(t, "ann@example.org", store.lastReq.Email)
	assert.Equal(t, 22, store.lastReq.Age)
	assert.True(t, store.lastReq.Active)
}

func TestCreate_ValidationBlocksSubmission(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{}
	// one-letter name and a broken email must not reach the store
	a, out := loggedInApp(t, store, "A\nnot-an-email\n\n22\ny\n")

	assert.Error(t, a.Create(context.Background()))
	assert.NotContains(t, store.calls, "create")
	assert.Contains(t, out.String(), "Name")
	assert.Contains(t, out.String(), "email")
}

func TestUpdate_KeepsDefaultsOnEmptyInput(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{user: &api.User{
		ID: 7, Name: "Ann Lee", Email: "ann@example.org", Age: 22, Active: true,
	}}
	// empty input keeps every current value
	a, _ := loggedInApp(t, store, "\n\n\n\n\n")

	require.NoError(t, a.Update(context.Background(), []string{"7"}))
	require.Contains(t, store.calls, "update")
	assert.Equal(t, "Ann Lee", store.lastReq.Name)
	assert.Equal(t, "ann@example.org", store.lastReq.Email)
	assert.Equal(t, 22, store.lastReq.Age)
	assert.True(t, store.lastReq.Active)
}

func TestDelete_Confirmed(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{}
	a, _ := loggedInApp(t, store, "y\n")

	require.NoError(t, a.Delete(context.Background(), []string{"7"}))
	assert.Contains(t, store.calls, "delete")
	assert.Equal(t, int64(7), store.lastID)
}

func TestDelete_CanceledByDefault(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{}
	// empty answer takes the default, which is no
	a, _ := loggedInApp(t, store, "\n")

	require.NoError(t, a.Delete(context.Background(), []string{"7"}))
	assert.NotContains(t, store.calls, "delete")
}

func TestActivateDeactivate(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{user: &api.User{ID: 7, Active: true}}
	a, _ := loggedInApp(t, store, "")

	require.NoError(t, a.Activate(context.Background(), []string{"7"}))
	require.NoError(t, a.Deactivate(context.Background(), []string{"7"}))
	assert.Equal(t, []string{"activate", "deactivate"}, store.calls)
}

func TestActiveInactiveLists(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{users: []api.User{{ID: 1, Name: "Ann", Email: "a@b.co", Age: 22, Active: true}}}
	a, out := loggedInApp(t, store, "")

	require.NoError(t, a.Active(context.Background()))
	require.NoError(t, a.Inactive(context.Background()))
	assert.Equal(t, []string{"active", "inactive"}, store.calls)
	assert.Contains(t, out.String(), "Ann")
}

func TestAgeRange(t *testing.T) {
	silencePrintln(t)
	store := &fakeStore{}
	a, _ := loggedInApp(t, store, "")

	require.NoError(t, a.AgeRange(context.Background(), []string{"18", "24"}))
	assert.Equal(t, 18, store.lastMin)
	assert.Equal(t, 24, store.lastMax)

	assert.Error(t, a.AgeRange(context.Background(), []string{"18"}))
	assert.Error(t, a.AgeRange(context.Background(), []string{"x", "y"}))
}
