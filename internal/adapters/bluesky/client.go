// Package bluesky is a minimal AT Protocol client covering exactly the
// surface this service needs: session creation, post search, record
// writes/deletes and thread reads. Callers hold no session state; each
// operation takes the token it should act under
package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skylens/internal/platform/config"
	perr "skylens/internal/platform/errors"
	"skylens/internal/platform/logger"
)

const (
	defaultPDS    = "https://bsky.social"
	defaultPublic = "https://public.api.bsky.app"
)

// Options configures the client
type Options struct {
	// PDSBase serves authenticated xrpc (createSession, repo writes)
	PDSBase string
	// PublicBase serves the public AppView (searchPosts, getPostThread)
	PublicBase string
	Timeout    time.Duration
	UserAgent  string

	// HTTPClient overrides the default client, mostly for tests
	HTTPClient *http.Client
}

// FromConfig reads client options from a BLUESKY_ scoped config view
func FromConfig(cfg config.Conf) Options {
	return Options{
		PDSBase:    cfg.MayString("PDS_URL", defaultPDS),
		PublicBase: cfg.MayString("PUBLIC_URL", defaultPublic),
		Timeout:    cfg.MayDuration("TIMEOUT", 30*time.Second),
	}
}

// Client talks xrpc over HTTP. Safe for concurrent use
type Client struct {
	pds    string
	public string
	ua     string
	hc     *http.Client
	log    logger.Logger
}

// New constructs a Client, filling defaults for anything unset
func New(opt Options) *Client {
	if opt.PDSBase == "" {
		opt.PDSBase = defaultPDS
	}
	if opt.PublicBase == "" {
		opt.PublicBase = defaultPublic
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 30 * time.Second
	}
	hc := opt.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opt.Timeout}
	}
	return &Client{
		pds:    strings.TrimRight(opt.PDSBase, "/"),
		public: strings.TrimRight(opt.PublicBase, "/"),
		ua:     opt.UserAgent,
		hc:     hc,
		log:    *logger.Named("bluesky"),
	}
}

// CreateSession authenticates with the PDS. Use an app password, not the
// account password
func (c *Client) CreateSession(ctx context.Context, identifier, password string) (Session, error) {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}
	var sess Session
	if err := c.postJSON(ctx, c.pds+"/xrpc/com.atproto.server.createSession", "", body, &sess); err != nil {
		return Session{}, perr.Wrap(err, perr.ErrorCodeAuth, "create session")
	}
	if sess.AccessJwt == "" {
		return Session{}, perr.Authf("create session: empty access token")
	}
	return sess, nil
}

// postJSON marshals body, POSTs it and decodes the response into out when
// out is non-nil. Non-2xx responses become Fetch errors carrying status and
// a bounded slice of the body
func (c *Client) postJSON(ctx context.Context, url, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeFetch, "marshal request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeFetch, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.decorate(req, token)
	return c.do(req, out)
}

// getJSON GETs url with query and decodes the response into out
func (c *Client) getJSON(ctx context.Context, url string, query urlValues, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeFetch, "build request")
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	c.decorate(req, token)
	return c.do(req, out)
}

type urlValues = url.Values

func (c *Client) decorate(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeFetch, "send request")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeFetch, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("url", req.URL.Path).
			Msg("xrpc error response")
		return perr.Fetchf("xrpc status %d: %s", resp.StatusCode, truncate(respBody, 512))
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeFetch, "decode response")
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
