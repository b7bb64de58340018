package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetory/console/internal/logger"
	"github.com/fleetory/console/internal/session"
)

const defaultTimeout = 10 * time.Second

// refreshPath is the token exchange endpoint. Calls to it are never
// themselves retried through the refresh flow.
const refreshPath = "/auth/refresh"

type Config struct {
	// BaseURL is prepended to every call, e.g. "http://localhost:8080/api/v1"
	BaseURL string

	// Timeout bounds each request. Expiry surfaces as KindConnection.
	// If not set the default is used.
	Timeout time.Duration
}

// Client is the single HTTP client every feature level caller goes through.
// It owns outbound authentication (bearer header from the session store) and
// inbound classification (taxonomy in errors.go), so callers never repeat
// either. Classified failures are also published to the Sink, exactly once
// per failed call.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	store   session.Store
	sink    Sink
	logger  logger.Logger

	// Serializes the reactive token refresh so concurrent 401s share
	// one exchange instead of racing the session store
	refreshMu sync.Mutex
}

func NewClient(cfg Config, store session.Store, sink Sink, log logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base url must not be empty")
	}
	if store == nil {
		return nil, errors.New("session store must not be nil")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if sink == nil {
		sink = discardSink{}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    &http.Client{},
		store:   store,
		sink:    sink,
		logger:  log,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, payload any, out any) error {
	return c.call(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) Put(ctx context.Context, path string, payload any, out any) error {
	return c.call(ctx, http.MethodPut, path, payload, out)
}

func (c *Client) Patch(ctx context.Context, path string, payload any, out any) error {
	return c.call(ctx, http.MethodPatch, path, payload, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

// call runs one request through the full pipeline: dispatch with the token
// held at call time, reactive refresh on 401, then classification side
// effects (session clear, event) for whatever error is finally returned.
func (c *Client) call(ctx context.Context, method, path string, payload any, out any) error {
	token := c.currentToken()
	err := c.dispatch(ctx, method, path, payload, out, token)

	if gwErr, ok := err.(*Error); ok && gwErr.Kind == KindAuthExpired && path != refreshPath {
		if fresh, refreshErr := c.refresh(ctx, token); refreshErr == nil {
			err = c.dispatch(ctx, method, path, payload, out, fresh)
		}
	}

	if err == nil {
		return nil
	}

	if gwErr, ok := err.(*Error); ok {
		if gwErr.Kind == KindAuthExpired {
			// Clear before notifying: by the time a listener reacts the
			// session must already be gone
			if clearErr := c.store.Clear(); clearErr != nil {
				c.logger.Error("Failed to clear session after 401", "error", clearErr)
			}
		}
		c.sink.Notify(Event{Kind: gwErr.Kind, Message: gwErr.Message})
	}

	return err
}

// dispatch sends a single request and classifies the response.
// The returned error is *Error for classified failures and a plain error for
// local problems (unencodable payload, undecodable success body).
func (c *Client) dispatch(ctx context.Context, method, path string, payload any, out any, token string) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("No response from backend", "method", method, "path", path, "error", err)
		return connectionError(err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logger.Warn("Failed to decode response", "method", method, "path", path, "error", err)
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	// Error bodies are optional; with nothing decodable the classification
	// falls back to its canned message
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)

	gwErr := classify(resp.StatusCode, eb)
	c.logger.Debug("Request failed", "method", method, "path", path, "status", resp.StatusCode, "kind", gwErr.Kind)
	return gwErr
}

// refresh exchanges the stored refresh token for a new pair and commits it.
// staleToken is the access token the failed request was dispatched with: if
// the store already holds a different one, another in-flight request won the
// exchange while we waited on the lock and its result is reused.
func (c *Client) refresh(ctx context.Context, staleToken string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current, err := c.store.Read()
	if err != nil {
		return "", err
	}
	if current.AccessToken != staleToken {
		return current.AccessToken, nil
	}
	if current.RefreshToken == "" {
		return "", errors.New("no refresh token stored")
	}

	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	exchange := map[string]string{"refreshToken": current.RefreshToken}
	if err := c.dispatch(ctx, http.MethodPost, refreshPath, exchange, &pair, ""); err != nil {
		return "", err
	}

	next := current
	next.AccessToken = pair.AccessToken
	next.RefreshToken = pair.RefreshToken
	if err := c.store.Commit(next); err != nil {
		return "", err
	}

	c.logger.Debug("Access token refreshed")
	return next.AccessToken, nil
}

// currentToken returns the access token at dispatch time, empty when no
// session is stored. The token is not re-read mid-flight.
func (c *Client) currentToken() string {
	s, err := c.store.Read()
	if err != nil {
		return ""
	}
	return s.AccessToken
}
