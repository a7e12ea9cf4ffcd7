package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/useradmin/internal/common"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func ptr[T any](v T) *T { return &v }

func TestUsers_PathSelectionAndParamOmission(t *testing.T) {
	var gotPath, gotQuery string

	r := chi.NewRouter()
	r.Get("/users", func(w http.ResponseWriter, req *http.Request) {
		gotPath, gotQuery = req.URL.Path, req.URL.RawQuery
		json.NewEncoder(w).Encode([]User{})
	})
	r.Get("/users/search", func(w http.ResponseWriter, req *http.Request) {
		gotPath, gotQuery = req.URL.Path, req.URL.RawQuery
		json.NewEncoder(w).Encode([]User{})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := NewHTTPClient(srv.URL, staticTokens(""), nil)

	_, err := c.Users(context.Background(), UserFilters{})
	require.NoError(t, err)
	assert.Equal(t, "/users", gotPath)
	assert.Empty(t, gotQuery)

	_, err = c.Users(context.Background(), UserFilters{MinAge: ptr(18)})
	require.NoError(t, err)
	assert.Equal(t, "/users/search", gotPath)
	assert.Equal(t, "minAge=18", gotQuery)

	// The active flag is client-side only and must never hit the wire.
	_, err = c.Users(context.Background(), UserFilters{Name: ptr("ann"), Active: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "name=ann", gotQuery)
}

func TestDo_AttachesBearerTokenAndRequestID(t *testing.T) {
	var auth, reqID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		auth = req.Header.Get(common.AuthorizationHeaderName)
		reqID = req.Header.Get(common.RequestIDHeaderName)
		json.NewEncoder(w).Encode(UserStats{})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, staticTokens("tok-123"), nil)
	_, err := c.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", auth)
	assert.NotEmpty(t, reqID)
}

func TestDo_NoAuthorizationHeaderWithoutToken(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, hasAuth = req.Header[common.AuthorizationHeaderName]
		json.NewEncoder(w).Encode(UserStats{})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, staticTokens(""), nil)
	_, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestDo_UnauthorizedFiresHookAndMatchesSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer srv.Close()

	hookCalls := 0
	c := NewHTTPClient(srv.URL, staticTokens("stale"), nil)
	c.OnUnauthorized(func() { hookCalls++ })

	_, err := c.Stats(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, 1, hookCalls)
}

func TestMapError_ClientErrorKeepsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "email already in use"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, staticTokens(""), nil)
	_, err := c.CreateUser(context.Background(), CreateUserRequest{Name: "X", Email: "x@y.z"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "email already in use", apiErr.Message)
	assert.Equal(t, "email already in use", UserMessage(err, "fallback"))
}

func TestMapError_ServerErrorIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"stack trace leaked"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, staticTokens(""), nil)
	_, err := c.Stats(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "internal server error", apiErr.Message)
	assert.Equal(t, "fallback", UserMessage(err, "fallback"))
}

func TestDo_NetworkFailureWrapsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewHTTPClient(srv.URL, staticTokens(""), nil)
	_, err := c.Stats(context.Background())
	assert.ErrorIs(t, err, common.ErrUnavailable)
}

func TestDeleteUser_AcceptsNoContent(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := NewHTTPClient(srv.URL, staticTokens(""), nil)
	require.NoError(t, c.DeleteUser(context.Background(), 3))
}

func TestFilters_String_IsCanonical(t *testing.T) {
	assert.Equal(t, "all", UserFilters{}.String())
	f := UserFilters{Name: ptr("bob"), MinAge: ptr(18), MaxAge: ptr(24), Active: ptr(false)}
	assert.Equal(t, "name=bob&minAge=18&maxAge=24&active=false", f.String())
}
