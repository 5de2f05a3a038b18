package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skylens/internal/adapters/bluesky"
	"skylens/internal/adapters/bluesky/enrich"
	"skylens/internal/core/textstats"
	perr "skylens/internal/platform/errors"
	"skylens/internal/services/api/analysis/domain"
)

type fakePlatform struct {
	loginCalls  int
	searchCalls int
	loginErr    error
	searchErr   error
	posts       []bluesky.PostView
	gotQuery    bluesky.SearchQuery
}

func (f *fakePlatform) CreateSession(context.Context, string, string) (bluesky.Session, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return bluesky.Session{}, f.loginErr
	}
	return bluesky.Session{AccessJwt: "jwt", DID: "did:plc:me"}, nil
}

func (f *fakePlatform) SearchPosts(_ context.Context, _ bluesky.Session, q bluesky.SearchQuery) ([]bluesky.PostView, error) {
	f.searchCalls++
	f.gotQuery = q
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.posts, nil
}

type fakeScratch struct {
	calls int
	doc   any
	err   error
}

func (f *fakeScratch) PutLatest(_ context.Context, doc any) error {
	f.calls++
	f.doc = doc
	return f.err
}

var testCreds = Credentials{Identifier: "me.test", AppPassword: "pw"}

func goodView(uri, text string) bluesky.PostView {
	rec, _ := json.Marshal(map[string]any{"text": text, "createdAt": "2026-03-01T10:00:00Z"})
	return bluesky.PostView{
		URI:    uri,
		Author: &bluesky.Author{Handle: "a.test"},
		Record: rec,
	}
}

func TestRunValidatesBeforeAnyNetworkCall(t *testing.T) {
	p := &fakePlatform{}
	sc := &fakeScratch{}
	s := New(p, sc, textstats.New(), testCreds)

	tests := []struct {
		name string
		in   domain.AnalyzeInput
	}{
		{"empty query", domain.AnalyzeInput{}},
		{"blank query", domain.AnalyzeInput{Query: "   "}},
		{
			"start after end",
			domain.AnalyzeInput{
				Query: "q",
				Start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{"negative limit", domain.AnalyzeInput{Query: "q", Limit: -1}},
		{"limit too large", domain.AnalyzeInput{Query: "q", Limit: 101}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.in)
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("code = %v, want validation", perr.CodeOf(err))
			}
		})
	}
	if p.loginCalls != 0 || p.searchCalls != 0 || sc.calls != 0 {
		t.Fatalf("validation failures must not reach the network or the store: %+v %+v", p, sc)
	}
}

func TestRunMissingCredentials(t *testing.T) {
	p := &fakePlatform{}
	s := New(p, &fakeScratch{}, textstats.New(), Credentials{})
	_, err := s.Run(context.Background(), domain.AnalyzeInput{Query: "q"})
	if !perr.IsCode(err, perr.ErrorCodeAuth) {
		t.Fatalf("code = %v, want auth", perr.CodeOf(err))
	}
	if p.loginCalls != 0 {
		t.Fatal("must not attempt login without credentials")
	}
}

func TestRunAuthFailureAborts(t *testing.T) {
	p := &fakePlatform{loginErr: perr.Authf("bad login")}
	sc := &fakeScratch{}
	s := New(p, sc, textstats.New(), testCreds)
	_, err := s.Run(context.Background(), domain.AnalyzeInput{Query: "q"})
	if !perr.IsCode(err, perr.ErrorCodeAuth) {
		t.Fatalf("code = %v, want auth", perr.CodeOf(err))
	}
	if sc.calls != 0 {
		t.Fatal("aborted run must not write scratch")
	}
}

func TestRunFetchFailureAborts(t *testing.T) {
	p := &fakePlatform{searchErr: perr.Fetchf("xrpc status 502")}
	sc := &fakeScratch{}
	s := New(p, sc, textstats.New(), testCreds)
	_, err := s.Run(context.Background(), domain.AnalyzeInput{Query: "q"})
	if !perr.IsCode(err, perr.ErrorCodeFetch) {
		t.Fatalf("code = %v, want fetch", perr.CodeOf(err))
	}
	if sc.calls != 0 {
		t.Fatal("aborted run must not write scratch")
	}
}

func TestRunSkipsBadPostsAndKeepsBatch(t *testing.T) {
	p := &fakePlatform{posts: []bluesky.PostView{
		goodView("at://did:plc:a/app.bsky.feed.post/1", "lovely weather"),
		{URI: "at://did:plc:b/app.bsky.feed.post/2", Author: &bluesky.Author{Handle: "b.test"}, Record: json.RawMessage(`{"text":7}`)},
		goodView("at://did:plc:c/app.bsky.feed.post/3", "awful traffic"),
	}}
	sc := &fakeScratch{}
	s := New(p, sc, textstats.New(), testCreds)

	rep, err := s.Run(context.Background(), domain.AnalyzeInput{Query: "weather"})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Count != 2 || rep.Skipped != 1 {
		t.Fatalf("report = %+v, want count 2 skipped 1", rep)
	}
	if rep.Message != "Analyzed 2 posts." {
		t.Fatalf("message = %q", rep.Message)
	}
	if sc.calls != 1 {
		t.Fatalf("scratch writes = %d, want 1", sc.calls)
	}
	analyzed, ok := sc.doc.([]enrich.Post)
	if !ok {
		t.Fatalf("scratch doc type %T", sc.doc)
	}
	if len(analyzed) != 2 || analyzed[0].Text != "lovely weather" || analyzed[1].Text != "awful traffic" {
		t.Fatalf("analyzed = %+v", analyzed)
	}
}

func TestRunDefaultsLimitAndWindow(t *testing.T) {
	p := &fakePlatform{}
	s := New(p, &fakeScratch{}, textstats.New(), testCreds)
	if _, err := s.Run(context.Background(), domain.AnalyzeInput{Query: "q"}); err != nil {
		t.Fatal(err)
	}
	if p.gotQuery.Limit != defaultLimit {
		t.Fatalf("limit = %d, want %d", p.gotQuery.Limit, defaultLimit)
	}
	if p.gotQuery.Since.IsZero() || p.gotQuery.Until.IsZero() {
		t.Fatal("window defaults must be filled")
	}
	if !p.gotQuery.Since.Before(p.gotQuery.Until) {
		t.Fatalf("window inverted: %v .. %v", p.gotQuery.Since, p.gotQuery.Until)
	}
}

func TestRunEmptyResultStillWritesScratch(t *testing.T) {
	p := &fakePlatform{}
	sc := &fakeScratch{}
	s := New(p, sc, textstats.New(), testCreds)
	rep, err := s.Run(context.Background(), domain.AnalyzeInput{Query: "nothing-matches"})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Count != 0 || rep.Skipped != 0 {
		t.Fatalf("report = %+v", rep)
	}
	if sc.calls != 1 {
		t.Fatal("an empty run still overwrites the scratch set")
	}
}
