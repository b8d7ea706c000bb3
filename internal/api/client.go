// Package api is the REST client for the shop API. Every operation maps
// to exactly one endpoint, attaches the session's bearer token and
// funnels its response through a single handler that implements the
// response contract: 401 tears down the session globally, empty and
// non-JSON success bodies yield no result, error bodies surface the
// server's message verbatim.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/sweetshop/sweetshop-client/internal/config"
	"github.com/sweetshop/sweetshop-client/internal/model"
	"github.com/sweetshop/sweetshop-client/internal/session"
)

// Client talks to the shop API. It is safe for concurrent use.
type Client struct {
	baseURL        string
	http           *http.Client
	session        *session.Store
	onUnauthorized func()
}

// New builds a client for the configured base URL. The session store
// supplies the bearer token and is torn down on any 401.
func New(cfg config.Config, sess *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{},
		session: sess,
	}
}

// OnUnauthorized installs the hook invoked after a 401 has cleared the
// session. The shell uses it to fall back to the sign-in view.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// ----- operations -----

// Login exchanges credentials for a token. It does not touch the
// session store; the caller decides what to do with the token.
func (c *Client) Login(ctx context.Context, username, password string) (model.LoginResponse, error) {
	var resp model.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, model.LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	return resp, err
}

// Register creates an account. The server may answer with a created
// resource or an empty body; either way the caller only needs success.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, model.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
}

// ListSweets fetches the full unfiltered catalog.
func (c *Client) ListSweets(ctx context.Context) ([]model.Sweet, error) {
	var sweets []model.Sweet
	if err := c.do(ctx, http.MethodGet, "/sweets", nil, nil, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

// SearchSweets fetches the catalog filtered by the given criteria.
// Empty criteria route to the unfiltered list endpoint; both endpoints
// return the same shape, so callers cannot tell the difference.
func (c *Client) SearchSweets(ctx context.Context, criteria model.SearchCriteria) ([]model.Sweet, error) {
	if criteria.IsEmpty() {
		return c.ListSweets(ctx)
	}
	var sweets []model.Sweet
	if err := c.do(ctx, http.MethodGet, "/sweets/search", criteria.Values(), nil, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

// CreateSweet adds an item. The server assigns the identifier.
func (c *Client) CreateSweet(ctx context.Context, in model.SweetInput) (*model.Sweet, error) {
	var sweet model.Sweet
	if err := c.do(ctx, http.MethodPost, "/sweets", nil, in, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

// UpdateSweet replaces an item's fields.
func (c *Client) UpdateSweet(ctx context.Context, id string, in model.SweetInput) (*model.Sweet, error) {
	var sweet model.Sweet
	if err := c.do(ctx, http.MethodPut, "/sweets/"+url.PathEscape(id), nil, in, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

// DeleteSweet removes an item. The server answers 204.
func (c *Client) DeleteSweet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sweets/"+url.PathEscape(id), nil, nil, nil)
}

// Purchase decrements stock by quantity. Zero means "unspecified" and
// defaults to one unit; a negative quantity never leaves the client.
// Whether enough stock exists is solely the server's call — its
// rejection comes back verbatim as a KindRequest error.
func (c *Client) Purchase(ctx context.Context, id string, quantity int) error {
	if quantity < 0 {
		return model.ErrQuantityNotPositive
	}
	if quantity == 0 {
		quantity = 1
	}
	body := map[string]int{"quantity": quantity}
	return c.do(ctx, http.MethodPost, "/sweets/"+url.PathEscape(id)+"/purchase", nil, body, nil)
}

// Restock increases stock by a strictly positive delta.
func (c *Client) Restock(ctx context.Context, id string, quantity int) (*model.Sweet, error) {
	if quantity <= 0 {
		return nil, model.ErrQuantityNotPositive
	}
	body := map[string]int{"quantity": quantity}
	var sweet model.Sweet
	if err := c.do(ctx, http.MethodPost, "/sweets/"+url.PathEscape(id)+"/restock", nil, body, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

// ----- transport -----

// errorBody is the shape of the server's error responses.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one round trip. out may be nil when the caller does not
// need the body; it is left untouched for empty or non-JSON responses.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Message: "encode request body", Err: err}
		}
		reader = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "request failed, please retry", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Global policy: any 401, from any operation, clears the
		// session and sends the app back to the sign-in view.
		c.session.Logout()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &Error{
			Kind:    KindUnauthorized,
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:    KindRequest,
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "read response body", Err: err}
	}
	// An empty or non-JSON success body is an absent result, not a
	// parse error.
	if len(payload) == 0 || !isJSON(resp.Header.Get("Content-Type")) {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Kind: KindTransport, Message: "decode response body", Err: err}
	}
	return nil
}

// readErrorMessage pulls the server's message out of an error body,
// falling back to a generic status line when the body is absent or not
// parsable.
func readErrorMessage(resp *http.Response) string {
	fallback := fmt.Sprintf("request failed with HTTP %d", resp.StatusCode)
	payload, err := io.ReadAll(resp.Body)
	if err != nil || len(payload) == 0 {
		return fallback
	}
	var eb errorBody
	if err := json.Unmarshal(payload, &eb); err != nil {
		return fallback
	}
	if eb.Message != "" {
		return eb.Message
	}
	if eb.Error != "" {
		return eb.Error
	}
	return fallback
}

// isJSON reports whether a content type denotes a JSON body.
func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
