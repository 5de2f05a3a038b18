package bluesky

import (
	"context"
	"strconv"
	"time"

	perr "skylens/internal/platform/errors"
)

// timestampMillis is the wire format searchPosts expects for since/until
const timestampMillis = "2006-01-02T15:04:05.000Z"

// SearchQuery bounds a post search. Zero Since/Until are omitted from the
// request so the platform applies its own defaults
type SearchQuery struct {
	Q     string
	Since time.Time
	Until time.Time
	Limit int
}

// SearchPosts runs one bounded page of app.bsky.feed.searchPosts against the
// public AppView under the session's bearer token. Anything past Limit is
// silently truncated; there is no pagination
func (c *Client) SearchPosts(ctx context.Context, sess Session, q SearchQuery) ([]PostView, error) {
	if q.Q == "" {
		return nil, perr.Validationf("search query is required")
	}
	params := urlValues{}
	params.Set("q", q.Q)
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if !q.Since.IsZero() {
		params.Set("since", q.Since.UTC().Format(timestampMillis))
	}
	if !q.Until.IsZero() {
		params.Set("until", q.Until.UTC().Format(timestampMillis))
	}

	var out struct {
		Posts []PostView `json:"posts"`
	}
	err := c.getJSON(ctx, c.public+"/xrpc/app.bsky.feed.searchPosts", params, sess.AccessJwt, &out)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "search posts %q", q.Q)
	}
	return out.Posts, nil
}
