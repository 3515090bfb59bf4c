package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/newscheck/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/newscheck/internal/common"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

// Client is the shared HTTP gateway for every resource operation. It reads
// the access token from the persisted store on each request, and on a 401
// performs the refresh protocol: at most one refresh-and-resend per logical
// request, refresh failures clear the stored pair and notify the session
// owner.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokens.Repository
	log     logging.Logger

	// refreshGroup coalesces concurrent refresh attempts triggered by a
	// burst of 401s into a single in-flight call.
	refreshGroup singleflight.Group

	// onSessionExpired fires once a refresh attempt fails terminally; the
	// CLI uses it to drop back to the login prompt.
	onSessionExpired func()
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

func New(baseURL string, store tokens.Repository, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  store,
		log:     log.With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// do performs an authenticated JSON call. The retried flag lives on this
// call frame only, never in shared state, so one logical request can be
// resent at most once no matter how many are in flight.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}

	reqID := uuid.NewString()
	retried := false

	for {
		req, err := c.newRequest(ctx, method, path, query, payload)
		if err != nil {
			return err
		}

		pair, err := c.tokens.Load(ctx)
		if err != nil {
			return err
		}
		if pair.Access != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+pair.Access)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		if resp.StatusCode == http.StatusUnauthorized && !retried {
			original := readError(resp)
			_ = resp.Body.Close()
			retried = true

			if refreshErr := c.refreshAccessToken(ctx, pair.Refresh); refreshErr != nil {
				c.log.Warn(ctx, "token refresh failed, clearing session",
					"request_id", reqID, "error", refreshErr)
				c.expireSession(ctx)
				return original
			}
			c.log.Debug(ctx, "token refreshed, resending request",
				"request_id", reqID, "method", method, "path", path)
			continue
		}

		return consume(resp, out)
	}
}

// doNoAuth performs a single-shot call without a bearer credential and
// without the refresh protocol (register, login, refresh itself).
func (c *Client) doNoAuth(ctx context.Context, method, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, nil, payload)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return consume(resp, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, payload []byte) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// refreshAccessToken exchanges the refresh token for a new access token and
// persists it. Concurrent callers holding the same refresh token share one
// network call.
func (c *Client) refreshAccessToken(ctx context.Context, refresh string) error {
	if refresh == "" {
		return ErrUnauthenticated
	}

	_, err, _ := c.refreshGroup.Do(refresh, func() (any, error) {
		var out refreshResponse
		body := map[string]string{"refresh_token": refresh}
		if err := c.doNoAuth(ctx, http.MethodPost, "/auth/refresh", body, &out); err != nil {
			return nil, err
		}
		if out.AccessToken == "" {
			return nil, common.ErrInvalidToken
		}
		if out.RefreshToken != "" {
			return nil, c.tokens.Save(ctx, tokens.Pair{Access: out.AccessToken, Refresh: out.RefreshToken})
		}
		return nil, c.tokens.SaveAccess(ctx, out.AccessToken)
	})
	return err
}

func (c *Client) expireSession(ctx context.Context) {
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear stored tokens", "error", err)
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return payload, nil
}

func consume(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return readError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readError extracts the {"error": "..."} body the backend uses for every
// failure shape.
func readError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
