// Package api is the HTTP client for the ledger API. Successful logins and
// registrations are written through to the session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/ledger-api/internal/client/session"
)

// ErrNotLoggedIn is returned by authenticated calls made without a token.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, HTTP %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Transaction mirrors the server's transaction record.
type Transaction struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Mobile    string    `json:"mobile"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Paybill   string    `json:"paybill"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTransaction is the body of AddTransaction.
type NewTransaction struct {
	Type    string  `json:"type"`
	Mobile  string  `json:"mobile"`
	Amount  float64 `json:"amount"`
	Date    string  `json:"date"`
	Paybill string  `json:"paybill"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Client talks to one server on behalf of one session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, sess *session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		session:    sess,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*session.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/register", body)
}

// Login signs in and stores the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*session.User, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/login", body)
}

// Logout forgets the local session. Tokens are stateless so the server is
// not contacted.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// Me fetches the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	var out session.User
	if err := c.authed(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var out []Transaction
	if err := c.authed(ctx, http.MethodGet, "/api/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddTransaction records tx and returns its id.
func (c *Client) AddTransaction(ctx context.Context, tx NewTransaction) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.authed(ctx, http.MethodPost, "/api/transactions", tx, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*session.User, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, path, "", body, &out); err != nil {
		return nil, err
	}
	if err := c.session.Set(out.User, out.Token); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// authed sends a request with the session token. A 401 means the token is
// no longer usable, so the session is cleared.
func (c *Client) authed(ctx context.Context, method, path string, body, out any) error {
	token := c.session.Token()
	if token == "" {
		return ErrNotLoggedIn
	}

	err := c.do(ctx, method, path, token, body, out)
	if IsUnauthorized(err) {
		if clearErr := c.session.Clear(); clearErr != nil {
			return errors.Join(err, clearErr)
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		}
		apiErr.Code = body.Code
	}
	return apiErr
}
