package payu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is the production gateway API host.
const DefaultBaseURL = "https://oneapi.payu.in"

// requestTimeout bounds every outbound call; there is no retry and no
// cancellation beyond it.
const requestTimeout = 30 * time.Second

// ErrNoData is the single failure callers of Do and DoStatic observe for
// transport problems: timeouts, connection errors, non-2xx statuses and
// undecodable bodies all collapse into it. The concrete cause is wrapped
// inside for logs; callers should only test with errors.Is.
var ErrNoData = errors.New("no data returned")

// ErrNoCredential reports that the credential a call path needs is not
// configured, or could not be acquired. No request reaches the gateway when
// it is returned.
var ErrNoCredential = errors.New("no valid credential")

// Client is the single choke point for outbound gateway calls. Session-mode
// calls go through Do, which keeps the shared session token fresh; calls that
// need the long-lived operator token go through DoStatic.
type Client struct {
	creds    Credentials
	session  *Session
	http     *http.Client
	logger   *zap.SugaredLogger
	baseURL  string
	tokenURL string
	refresh  singleflight.Group
	now      func() time.Time
}

type Option func(*Client)

// WithBaseURL points the client at a different gateway host, typically an
// httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTokenURL points the refresher at a different identity provider.
func WithTokenURL(u string) Option {
	return func(c *Client) { c.tokenURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithClock overrides the time source used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(creds Credentials, logger *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		creds:    creds,
		session:  NewSession(),
		http:     &http.Client{Timeout: requestTimeout},
		logger:   logger,
		baseURL:  DefaultBaseURL,
		tokenURL: DefaultTokenURL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the gateway host endpoints are built against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues a session-mode call: the session token is refreshed when needed,
// default headers are assembled, caller headers are layered on top and an
// Authorization header is injected when the caller supplied none. A nil body
// means GET, otherwise the body is POSTed as JSON.
func (c *Client) Do(ctx context.Context, url string, headers map[string]string, body map[string]any) (map[string]any, error) {
	if !c.ensureToken(ctx) {
		return nil, fmt.Errorf("%w: session token unavailable", ErrNoCredential)
	}

	h := c.defaultHeaders()
	for k, v := range headers {
		h[k] = v
	}
	if h["Authorization"] == "" {
		if auth := c.session.authorization(); auth != "" {
			h["Authorization"] = auth
		}
	}

	return c.roundTrip(ctx, url, h, body)
}

// DoStatic issues a call authorized with the pre-issued operator token,
// bypassing the session and its refresh machinery entirely.
func (c *Client) DoStatic(ctx context.Context, url string, headers map[string]string, body map[string]any) (map[string]any, error) {
	if c.creds.AuthToken == "" {
		return nil, fmt.Errorf("%w: static auth token not configured", ErrNoCredential)
	}

	h := map[string]string{"Accept": "application/json"}
	if c.creds.MerchantID != "" {
		h["mid"] = c.creds.MerchantID
	}
	for k, v := range headers {
		h[k] = v
	}
	h["Authorization"] = "Bearer " + c.creds.AuthToken

	return c.roundTrip(ctx, url, h, body)
}

func (c *Client) defaultHeaders() map[string]string {
	h := map[string]string{"Accept": "application/json"}
	if c.creds.MerchantID != "" {
		h["mid"] = c.creds.MerchantID
	}
	return h
}

// roundTrip performs the shared request mechanics of both call modes.
func (c *Client) roundTrip(ctx context.Context, url string, headers map[string]string, body map[string]any) (map[string]any, error) {
	var req *http.Request
	var err error

	if body != nil {
		payload, merr := json.Marshal(body)
		if merr != nil {
			return nil, fmt.Errorf("%w: encode body: %v", ErrNoData, merr)
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNoData, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnw("gateway call failed", "cause", classifyTransport(err), "url", url)
		return nil, fmt.Errorf("%w: %s", ErrNoData, classifyTransport(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		c.logger.Warnw("gateway returned error status", "status", resp.StatusCode, "url", url)
		return nil, fmt.Errorf("%w: status %d", ErrNoData, resp.StatusCode)
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.Warnw("gateway response decode failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: decode response: %v", ErrNoData, err)
	}
	return data, nil
}

// classifyTransport distinguishes timeouts from other connection failures for
// logging. Callers never see the distinction; they only get ErrNoData.
func classifyTransport(err error) string {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return "timeout"
	}
	return "connection error"
}
