package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skylens/internal/adapters/bluesky"
	perr "skylens/internal/platform/errors"
	"skylens/internal/services/api/actions/domain"
)

type createCall struct {
	collection string
	record     map[string]any
}

type fakeGateway struct {
	loginErr  error
	createErr error
	deleteErr error
	getErr    error

	creates []createCall
	deletes []string

	parentEnv bluesky.RecordEnvelope
	thread    map[string]any
}

func (f *fakeGateway) CreateSession(context.Context, string, string) (bluesky.Session, error) {
	if f.loginErr != nil {
		return bluesky.Session{}, f.loginErr
	}
	return bluesky.Session{AccessJwt: "jwt", DID: "did:plc:me"}, nil
}

func (f *fakeGateway) CreateRecord(_ context.Context, _ bluesky.Session, collection string, record any) (bluesky.RecordRef, error) {
	if f.createErr != nil {
		return bluesky.RecordRef{}, f.createErr
	}
	b, _ := json.Marshal(record)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	f.creates = append(f.creates, createCall{collection: collection, record: m})
	return bluesky.RecordRef{URI: "at://did:plc:me/" + collection + "/3new", CID: "bafynew"}, nil
}

func (f *fakeGateway) DeleteRecord(_ context.Context, _ bluesky.Session, uri string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, uri)
	return nil
}

func (f *fakeGateway) GetRecord(_ context.Context, _ bluesky.Session, uri string) (bluesky.RecordEnvelope, error) {
	if f.getErr != nil {
		return bluesky.RecordEnvelope{}, f.getErr
	}
	return f.parentEnv, nil
}

func (f *fakeGateway) GetPostThread(context.Context, bluesky.Session, string) (map[string]any, error) {
	return f.thread, nil
}

var testCreds = Credentials{Identifier: "me.test", AppPassword: "pw"}

func testSvc(gw Gateway) *Svc {
	s := New(gw, testCreds)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestFollowCreatesGraphRecord(t *testing.T) {
	gw := &fakeGateway{}
	s := testSvc(gw)

	out, err := s.Follow(context.Background(), domain.FollowInput{DID: "did:plc:target"})
	if err != nil {
		t.Fatal(err)
	}
	if out.URI == "" || out.CID == "" {
		t.Fatalf("out = %+v", out)
	}
	if len(gw.creates) != 1 {
		t.Fatalf("creates = %d", len(gw.creates))
	}
	c := gw.creates[0]
	if c.collection != "app.bsky.graph.follow" {
		t.Fatalf("collection = %q", c.collection)
	}
	if c.record["subject"] != "did:plc:target" {
		t.Fatalf("subject = %v", c.record["subject"])
	}
	if c.record["createdAt"] != "2026-03-01T12:00:00Z" {
		t.Fatalf("createdAt = %v", c.record["createdAt"])
	}
}

func TestLikeAndRepostSubjects(t *testing.T) {
	gw := &fakeGateway{}
	s := testSvc(gw)

	if _, err := s.Like(context.Background(), domain.LikeInput{URI: "at://x/app.bsky.feed.post/1", CID: "c1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Repost(context.Background(), domain.RepostInput{URI: "at://x/app.bsky.feed.post/1", CID: "c1"}); err != nil {
		t.Fatal(err)
	}
	if gw.creates[0].collection != "app.bsky.feed.like" || gw.creates[1].collection != "app.bsky.feed.repost" {
		t.Fatalf("collections = %v %v", gw.creates[0].collection, gw.creates[1].collection)
	}
	subj, ok := gw.creates[0].record["subject"].(map[string]any)
	if !ok || subj["uri"] != "at://x/app.bsky.feed.post/1" || subj["cid"] != "c1" {
		t.Fatalf("subject = %v", gw.creates[0].record["subject"])
	}
}

func TestUndoActionsDelete(t *testing.T) {
	gw := &fakeGateway{}
	s := testSvc(gw)

	if err := s.Unfollow(context.Background(), domain.UnfollowInput{URI: "at://me/app.bsky.graph.follow/1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Unlike(context.Background(), domain.UnlikeInput{URI: "at://me/app.bsky.feed.like/2"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Unrepost(context.Background(), domain.UnrepostInput{URI: "at://me/app.bsky.feed.repost/3"}); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"at://me/app.bsky.graph.follow/1",
		"at://me/app.bsky.feed.like/2",
		"at://me/app.bsky.feed.repost/3",
	}
	if len(gw.deletes) != 3 {
		t.Fatalf("deletes = %v", gw.deletes)
	}
	for i := range want {
		if gw.deletes[i] != want[i] {
			t.Fatalf("deletes[%d] = %q, want %q", i, gw.deletes[i], want[i])
		}
	}
}

func TestReplyUsesParentAsRootForTopLevelParent(t *testing.T) {
	gw := &fakeGateway{parentEnv: bluesky.RecordEnvelope{
		URI:   "at://did:plc:p/app.bsky.feed.post/par",
		CID:   "cpar",
		Value: json.RawMessage(`{"text":"top level"}`),
	}}
	s := testSvc(gw)

	if _, err := s.Reply(context.Background(), domain.ReplyInput{Text: "hi", ParentURI: "at://did:plc:p/app.bsky.feed.post/par"}); err != nil {
		t.Fatal(err)
	}
	reply := gw.creates[0].record["reply"].(map[string]any)
	root := reply["root"].(map[string]any)
	parent := reply["parent"].(map[string]any)
	if root["uri"] != "at://did:plc:p/app.bsky.feed.post/par" || root["cid"] != "cpar" {
		t.Fatalf("root = %v", root)
	}
	if parent["uri"] != root["uri"] {
		t.Fatalf("parent = %v", parent)
	}
}

func TestReplyInheritsDeclaredRoot(t *testing.T) {
	gw := &fakeGateway{parentEnv: bluesky.RecordEnvelope{
		URI: "at://did:plc:p/app.bsky.feed.post/mid",
		CID: "cmid",
		Value: json.RawMessage(`{
			"text": "mid thread",
			"reply": {
				"root":   {"uri": "at://did:plc:r/app.bsky.feed.post/root", "cid": "croot"},
				"parent": {"uri": "at://did:plc:q/app.bsky.feed.post/up", "cid": "cup"}
			}
		}`),
	}}
	s := testSvc(gw)

	if _, err := s.Reply(context.Background(), domain.ReplyInput{Text: "hi", ParentURI: "at://did:plc:p/app.bsky.feed.post/mid"}); err != nil {
		t.Fatal(err)
	}
	reply := gw.creates[0].record["reply"].(map[string]any)
	root := reply["root"].(map[string]any)
	parent := reply["parent"].(map[string]any)
	if root["uri"] != "at://did:plc:r/app.bsky.feed.post/root" || root["cid"] != "croot" {
		t.Fatalf("root = %v", root)
	}
	if parent["uri"] != "at://did:plc:p/app.bsky.feed.post/mid" || parent["cid"] != "cmid" {
		t.Fatalf("parent = %v", parent)
	}
}

func TestFailuresCarryActionName(t *testing.T) {
	boom := perr.Actionf("upstream rejected")

	tests := []struct {
		op  string
		run func(s *Svc) error
		gw  *fakeGateway
	}{
		{"follow", func(s *Svc) error {
			_, err := s.Follow(context.Background(), domain.FollowInput{DID: "d"})
			return err
		}, &fakeGateway{createErr: boom}},
		{"unfollow", func(s *Svc) error {
			return s.Unfollow(context.Background(), domain.UnfollowInput{URI: "at://a/b/c"})
		}, &fakeGateway{deleteErr: boom}},
		{"like", func(s *Svc) error {
			_, err := s.Like(context.Background(), domain.LikeInput{URI: "u", CID: "c"})
			return err
		}, &fakeGateway{createErr: boom}},
		{"unlike", func(s *Svc) error {
			return s.Unlike(context.Background(), domain.UnlikeInput{URI: "at://a/b/c"})
		}, &fakeGateway{deleteErr: boom}},
		{"repost", func(s *Svc) error {
			_, err := s.Repost(context.Background(), domain.RepostInput{URI: "u", CID: "c"})
			return err
		}, &fakeGateway{createErr: boom}},
		{"unrepost", func(s *Svc) error {
			return s.Unrepost(context.Background(), domain.UnrepostInput{URI: "at://a/b/c"})
		}, &fakeGateway{deleteErr: boom}},
		{"reply", func(s *Svc) error {
			_, err := s.Reply(context.Background(), domain.ReplyInput{Text: "t", ParentURI: "at://a/b/c"})
			return err
		}, &fakeGateway{getErr: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			err := tt.run(testSvc(tt.gw))
			if err == nil {
				t.Fatal("expected error")
			}
			e, ok := perr.As(err)
			if !ok {
				t.Fatalf("not a project error: %v", err)
			}
			if e.Op() != tt.op {
				t.Fatalf("op = %q, want %q", e.Op(), tt.op)
			}
		})
	}
}

func TestLoginFailureStampsOp(t *testing.T) {
	gw := &fakeGateway{loginErr: perr.Authf("bad login")}
	s := testSvc(gw)
	_, err := s.Follow(context.Background(), domain.FollowInput{DID: "d"})
	e, ok := perr.As(err)
	if !ok {
		t.Fatalf("not a project error: %v", err)
	}
	if e.Op() != "follow" {
		t.Fatalf("op = %q, want follow", e.Op())
	}
	if !perr.IsCode(err, perr.ErrorCodeAuth) {
		t.Fatalf("code = %v, want auth", perr.CodeOf(err))
	}
}

func TestGetThreadPassthrough(t *testing.T) {
	gw := &fakeGateway{thread: map[string]any{"thread": map[string]any{"post": map[string]any{"uri": "u"}}}}
	s := testSvc(gw)
	out, err := s.GetThread(context.Background(), domain.ThreadInput{URI: "u"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out["thread"]; !ok {
		t.Fatalf("out = %v", out)
	}
}
