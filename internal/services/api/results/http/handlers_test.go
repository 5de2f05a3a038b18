package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "skylens/internal/platform/errors"
	phttp "skylens/internal/platform/net/http"
	"skylens/internal/services/api/results/domain"
)

type fakeSvc struct {
	names  []string
	docs   map[string]domain.ResultSet
	latest domain.ResultSet
}

func (f *fakeSvc) Save(_ context.Context, in domain.SaveInput) (domain.SaveOutput, error) {
	return domain.SaveOutput{Filename: "2026-03-01-104500-" + in.Query + "-1a2b3c4d.json"}, nil
}

func (f *fakeSvc) PutLatest(context.Context, any) error { return nil }

func (f *fakeSvc) List(context.Context) ([]string, error) { return f.names, nil }

func (f *fakeSvc) Get(_ context.Context, name string) (domain.ResultSet, error) {
	doc, ok := f.docs[name]
	if !ok {
		return nil, perr.NotFoundf("no saved result %q", name)
	}
	return doc, nil
}

func (f *fakeSvc) Batch(ctx context.Context, names []string) ([]domain.ResultSet, error) {
	out := make([]domain.ResultSet, 0, len(names))
	for _, n := range names {
		doc, err := f.Get(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (f *fakeSvc) Latest(context.Context) (domain.ResultSet, error) {
	if f.latest == nil {
		return nil, perr.NotFoundf("no analysis has run yet")
	}
	return f.latest, nil
}

func newTestRouter(f *fakeSvc) stdhttp.Handler {
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), f)
	return m
}

func doReq(t *testing.T, h stdhttp.Handler, method, path, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (body %s)", err, rec.Body.String())
	}
	return rec, env
}

func TestSaveResultEnvelope(t *testing.T) {
	h := newTestRouter(&fakeSvc{})
	rec, env := doReq(t, h, stdhttp.MethodPost, "/save_result", `{"query":"coffee","results":[{"text":"a"}]}`)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !env.Success || env.Error != "" {
		t.Fatalf("envelope = %+v", env)
	}
	data, ok := env.Data.(map[string]any)
	if !ok || data["filename"] != "2026-03-01-104500-coffee-1a2b3c4d.json" {
		t.Fatalf("data = %v", env.Data)
	}
}

func TestSaveResultRejectsBadJSON(t *testing.T) {
	h := newTestRouter(&fakeSvc{})
	rec, env := doReq(t, h, stdhttp.MethodPost, "/save_result", `{"query": nope}`)

	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Success {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestGetSavedMissingIs404(t *testing.T) {
	h := newTestRouter(&fakeSvc{docs: map[string]domain.ResultSet{}})
	rec, env := doReq(t, h, stdhttp.MethodGet, "/saved/ghost.json", "")

	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Success || env.Error == "" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestGetSavedReturnsRawDocument(t *testing.T) {
	doc := domain.ResultSet(`[{"text":"hello","polarity":0.5}]`)
	h := newTestRouter(&fakeSvc{docs: map[string]domain.ResultSet{"a.json": doc}})
	rec, env := doReq(t, h, stdhttp.MethodGet, "/saved/a.json", "")

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	posts, ok := env.Data.([]any)
	if !ok || len(posts) != 1 {
		t.Fatalf("data = %v", env.Data)
	}
	first := posts[0].(map[string]any)
	if first["text"] != "hello" {
		t.Fatalf("first = %v", first)
	}
}

func TestSavedBatchRequiresNames(t *testing.T) {
	h := newTestRouter(&fakeSvc{})
	rec, env := doReq(t, h, stdhttp.MethodPost, "/saved_batch", `{"filenames":[]}`)

	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Success {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestSavedListEmptyIsArray(t *testing.T) {
	h := newTestRouter(&fakeSvc{})
	rec, env := doReq(t, h, stdhttp.MethodGet, "/saved_list", "")

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	names, ok := env.Data.([]any)
	if !ok || len(names) != 0 {
		t.Fatalf("data = %v", env.Data)
	}
}

func TestLatestBeforeAnyRunIs404(t *testing.T) {
	h := newTestRouter(&fakeSvc{})
	rec, env := doReq(t, h, stdhttp.MethodGet, "/latest", "")

	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Success {
		t.Fatalf("envelope = %+v", env)
	}
}
