// Package service contains the platform action workflows
package service

import (
	"context"
	"encoding/json"
	"time"

	"skylens/internal/adapters/bluesky"
	perr "skylens/internal/platform/errors"
	"skylens/internal/platform/logger"
	"skylens/internal/services/api/actions/domain"
)

// Gateway is the slice of the Bluesky client actions need
type Gateway interface {
	CreateSession(ctx context.Context, identifier, password string) (bluesky.Session, error)
	CreateRecord(ctx context.Context, sess bluesky.Session, collection string, record any) (bluesky.RecordRef, error)
	DeleteRecord(ctx context.Context, sess bluesky.Session, uri string) error
	GetRecord(ctx context.Context, sess bluesky.Session, uri string) (bluesky.RecordEnvelope, error)
	GetPostThread(ctx context.Context, sess bluesky.Session, uri string) (map[string]any, error)
}

// Credentials are the app-password login pair
type Credentials struct {
	Identifier  string
	AppPassword string
}

// Service defines the actions service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the actions service. Every call authenticates on its own;
// there is no session reuse across actions
type Svc struct {
	gw    Gateway
	creds Credentials
	log   logger.Logger
	now   func() time.Time
}

// New constructs the actions service
func New(gw Gateway, creds Credentials) *Svc {
	if gw == nil {
		panic("actions.Service requires a non nil Gateway")
	}
	return &Svc{
		gw:    gw,
		creds: creds,
		log:   *logger.Named("actions"),
		now:   time.Now,
	}
}

// session logs in for one action, stamping failures with the action name
func (s *Svc) session(ctx context.Context, op string) (bluesky.Session, error) {
	if s.creds.Identifier == "" || s.creds.AppPassword == "" {
		return bluesky.Session{}, perr.WithOp(perr.Authf("bluesky credentials are not configured"), op)
	}
	sess, err := s.gw.CreateSession(ctx, s.creds.Identifier, s.creds.AppPassword)
	if err != nil {
		return bluesky.Session{}, perr.WithOp(err, op)
	}
	return sess, nil
}

func (s *Svc) createdAt() string { return s.now().UTC().Format(time.RFC3339) }

// Follow creates an app.bsky.graph.follow record for the DID
func (s *Svc) Follow(ctx context.Context, in domain.FollowInput) (domain.RecordOutput, error) {
	const op = "follow"
	sess, err := s.session(ctx, op)
	if err != nil {
		return domain.RecordOutput{}, err
	}
	ref, err := s.gw.CreateRecord(ctx, sess, "app.bsky.graph.follow", map[string]any{
		"$type":     "app.bsky.graph.follow",
		"subject":   in.DID,
		"createdAt": s.createdAt(),
	})
	if err != nil {
		return domain.RecordOutput{}, perr.WithOp(err, op)
	}
	return domain.RecordOutput{URI: ref.URI, CID: ref.CID}, nil
}

// Unfollow deletes the follow record behind the given at:// URI
func (s *Svc) Unfollow(ctx context.Context, in domain.UnfollowInput) error {
	const op = "unfollow"
	sess, err := s.session(ctx, op)
	if err != nil {
		return err
	}
	if err := s.gw.DeleteRecord(ctx, sess, in.URI); err != nil {
		return perr.WithOp(err, op)
	}
	return nil
}

// Like creates an app.bsky.feed.like record for the post
func (s *Svc) Like(ctx context.Context, in domain.LikeInput) (domain.RecordOutput, error) {
	const op = "like"
	sess, err := s.session(ctx, op)
	if err != nil {
		return domain.RecordOutput{}, err
	}
	ref, err := s.gw.CreateRecord(ctx, sess, "app.bsky.feed.like", map[string]any{
		"$type":     "app.bsky.feed.like",
		"subject":   map[string]any{"uri": in.URI, "cid": in.CID},
		"createdAt": s.createdAt(),
	})
	if err != nil {
		return domain.RecordOutput{}, perr.WithOp(err, op)
	}
	return domain.RecordOutput{URI: ref.URI, CID: ref.CID}, nil
}

// Unlike deletes the like record behind the given at:// URI
func (s *Svc) Unlike(ctx context.Context, in domain.UnlikeInput) error {
	const op = "unlike"
	sess, err := s.session(ctx, op)
	if err != nil {
		return err
	}
	if err := s.gw.DeleteRecord(ctx, sess, in.URI); err != nil {
		return perr.WithOp(err, op)
	}
	return nil
}

// Repost creates an app.bsky.feed.repost record for the post
func (s *Svc) Repost(ctx context.Context, in domain.RepostInput) (domain.RecordOutput, error) {
	const op = "repost"
	sess, err := s.session(ctx, op)
	if err != nil {
		return domain.RecordOutput{}, err
	}
	ref, err := s.gw.CreateRecord(ctx, sess, "app.bsky.feed.repost", map[string]any{
		"$type":     "app.bsky.feed.repost",
		"subject":   map[string]any{"uri": in.URI, "cid": in.CID},
		"createdAt": s.createdAt(),
	})
	if err != nil {
		return domain.RecordOutput{}, perr.WithOp(err, op)
	}
	return domain.RecordOutput{URI: ref.URI, CID: ref.CID}, nil
}

// Unrepost deletes the repost record behind the given at:// URI
func (s *Svc) Unrepost(ctx context.Context, in domain.UnrepostInput) error {
	const op = "unrepost"
	sess, err := s.session(ctx, op)
	if err != nil {
		return err
	}
	if err := s.gw.DeleteRecord(ctx, sess, in.URI); err != nil {
		return perr.WithOp(err, op)
	}
	return nil
}

// Reply posts an app.bsky.feed.post reply under the parent. Root resolution
// is one hop: the parent's declared root wins, else the parent is the root
func (s *Svc) Reply(ctx context.Context, in domain.ReplyInput) (domain.RecordOutput, error) {
	const op = "reply"
	sess, err := s.session(ctx, op)
	if err != nil {
		return domain.RecordOutput{}, err
	}

	parent, err := s.gw.GetRecord(ctx, sess, in.ParentURI)
	if err != nil {
		return domain.RecordOutput{}, perr.WithOp(err, op)
	}
	parentRef := map[string]any{"uri": parent.URI, "cid": parent.CID}
	rootRef := parentRef

	var parentRec bluesky.PostRecord
	if err := json.Unmarshal(parent.Value, &parentRec); err == nil &&
		parentRec.Reply != nil && parentRec.Reply.Root.URI != "" {
		rootRef = map[string]any{
			"uri": parentRec.Reply.Root.URI,
			"cid": parentRec.Reply.Root.CID,
		}
	}

	ref, err := s.gw.CreateRecord(ctx, sess, "app.bsky.feed.post", map[string]any{
		"$type":     "app.bsky.feed.post",
		"text":      in.Text,
		"createdAt": s.createdAt(),
		"reply": map[string]any{
			"root":   rootRef,
			"parent": parentRef,
		},
	})
	if err != nil {
		return domain.RecordOutput{}, perr.WithOp(err, op)
	}
	return domain.RecordOutput{URI: ref.URI, CID: ref.CID}, nil
}

// GetThread returns the resolved thread view for a post
func (s *Svc) GetThread(ctx context.Context, in domain.ThreadInput) (domain.Thread, error) {
	const op = "get_thread"
	sess, err := s.session(ctx, op)
	if err != nil {
		return nil, err
	}
	out, err := s.gw.GetPostThread(ctx, sess, in.URI)
	if err != nil {
		return nil, perr.WithOp(err, op)
	}
	return out, nil
}
