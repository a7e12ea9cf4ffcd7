package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/useradmin/internal/common"
)

// TokenSource supplies the current bearer token, or "" when no session
// exists.
type TokenSource interface {
	Token() string
}

// HTTPClient implements Client over the backend's REST/JSON surface.
type HTTPClient struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client rooted at baseURL (e.g.
// "http://localhost:8080/api"). If httpClient is nil, http.DefaultClient is
// used.
func NewHTTPClient(baseURL string, tokens TokenSource, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// OnUnauthorized registers fn to be called whenever any request comes back
// 401. Background refreshes trigger it the same as interactive calls.
func (c *HTTPClient) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// errorBody is the backend's error envelope; either field may carry the
// message depending on the endpoint.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one request. A non-nil body is sent as JSON; a non-nil out
// receives the decoded 2xx response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// mapError converts a non-2xx response into an APIError. Client errors keep
// the server-supplied message; server errors get a generic one.
func (c *HTTPClient) mapError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	if resp.StatusCode >= 500 {
		apiErr.Message = "internal server error"
		return apiErr
	}

	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
		switch {
		case eb.Message != "":
			apiErr.Message = eb.Message
		case eb.Error != "":
			apiErr.Message = eb.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Users(ctx context.Context, filters UserFilters) ([]User, error) {
	path := "/users"
	query := filters.queryValues()
	if len(query) > 0 {
		path = "/users/search"
	}

	var out []User
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) User(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, req CreateUserRequest) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/users/"+strconv.FormatInt(id, 10), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/users/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (c *HTTPClient) ActivateUser(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPatch, "/users/"+strconv.FormatInt(id, 10)+"/activate", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeactivateUser(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPatch, "/users/"+strconv.FormatInt(id, 10)+"/deactivate", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*UserStats, error) {
	var out UserStats
	if err := c.do(ctx, http.MethodGet, "/users/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ActiveUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users/active", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) InactiveUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users/inactive", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UsersByAgeRange(ctx context.Context, minAge, maxAge int) ([]User, error) {
	query := url.Values{}
	query.Set("minAge", strconv.Itoa(minAge))
	query.Set("maxAge", strconv.Itoa(maxAge))

	var out []User
	if err := c.do(ctx, http.MethodGet, "/users/age-range", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GenerateTokenFor(ctx context.Context, email string) (*GeneratedToken, error) {
	var out GeneratedToken
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/admin/generate-token", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GenerateMyToken(ctx context.Context) (*GeneratedToken, error) {
	var out GeneratedToken
	if err := c.do(ctx, http.MethodPost, "/auth/generate-my-token", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
