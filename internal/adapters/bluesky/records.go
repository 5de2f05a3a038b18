package bluesky

import (
	"context"
	"encoding/json"
	"strings"

	perr "skylens/internal/platform/errors"
)

// ParseATURI splits an at:// URI into repo, collection and rkey
func ParseATURI(uri string) (repo, collection, rkey string, err error) {
	rest, ok := strings.CutPrefix(uri, "at://")
	if !ok {
		return "", "", "", perr.Validationf("not an at:// uri: %q", uri)
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", perr.Validationf("malformed at:// uri: %q", uri)
	}
	return parts[0], parts[1], parts[2], nil
}

// CreateRecord writes a record into the session repo and returns its
// strong reference
func (c *Client) CreateRecord(ctx context.Context, sess Session, collection string, record any) (RecordRef, error) {
	body := map[string]any{
		"repo":       sess.DID,
		"collection": collection,
		"record":     record,
	}
	var ref RecordRef
	err := c.postJSON(ctx, c.pds+"/xrpc/com.atproto.repo.createRecord", sess.AccessJwt, body, &ref)
	if err != nil {
		return RecordRef{}, perr.Wrapf(err, perr.ErrorCodeAction, "create record %s", collection)
	}
	return ref, nil
}

// DeleteRecord removes the record behind an at:// URI from its repo
func (c *Client) DeleteRecord(ctx context.Context, sess Session, uri string) error {
	repo, collection, rkey, err := ParseATURI(uri)
	if err != nil {
		return err
	}
	body := map[string]any{
		"repo":       repo,
		"collection": collection,
		"rkey":       rkey,
	}
	var out json.RawMessage
	err = c.postJSON(ctx, c.pds+"/xrpc/com.atproto.repo.deleteRecord", sess.AccessJwt, body, &out)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeAction, "delete record %s", collection)
	}
	return nil
}

// RecordEnvelope is the getRecord response: the reference plus the raw value
type RecordEnvelope struct {
	URI   string          `json:"uri"`
	CID   string          `json:"cid"`
	Value json.RawMessage `json:"value"`
}

// GetRecord fetches one record by at:// URI
func (c *Client) GetRecord(ctx context.Context, sess Session, uri string) (RecordEnvelope, error) {
	repo, collection, rkey, err := ParseATURI(uri)
	if err != nil {
		return RecordEnvelope{}, err
	}
	params := urlValues{}
	params.Set("repo", repo)
	params.Set("collection", collection)
	params.Set("rkey", rkey)

	var env RecordEnvelope
	err = c.getJSON(ctx, c.pds+"/xrpc/com.atproto.repo.getRecord", params, sess.AccessJwt, &env)
	if err != nil {
		return RecordEnvelope{}, perr.Wrapf(err, perr.ErrorCodeFetch, "get record %s", uri)
	}
	return env, nil
}

// GetPostThread fetches the resolved thread view for a post URI.
// The response shape is deep and consumer-defined, so it passes through as a map
func (c *Client) GetPostThread(ctx context.Context, sess Session, uri string) (map[string]any, error) {
	if uri == "" {
		return nil, perr.Validationf("thread uri is required")
	}
	params := urlValues{}
	params.Set("uri", uri)

	var out map[string]any
	err := c.getJSON(ctx, c.public+"/xrpc/app.bsky.feed.getPostThread", params, sess.AccessJwt, &out)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "get post thread %s", uri)
	}
	return out, nil
}
