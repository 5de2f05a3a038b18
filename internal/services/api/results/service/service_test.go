package service

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	perr "skylens/internal/platform/errors"
	"skylens/internal/platform/store"
	"skylens/internal/services/api/results/domain"
	"skylens/internal/services/api/results/repo"
)

func testSvc(t *testing.T) *Svc {
	t.Helper()
	st, err := store.Open(store.Config{
		ResultsDir: t.TempDir(),
		ScratchDir: t.TempDir(),
	})
	if err != nil {
		t.Fatal(err)
	}
	s := New(st, repo.NewFS())
	s.now = func() time.Time { return time.Date(2026, 3, 1, 10, 45, 0, 0, time.UTC) }
	s.newID = func() string { return "1a2b3c4d-0000-0000-0000-000000000000" }
	return s
}

func TestSaveGeneratesName(t *testing.T) {
	s := testSvc(t)
	out, err := s.Save(context.Background(), domain.SaveInput{
		Query:   "hot coffee",
		Results: []any{map[string]any{"text": "x"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "2026-03-01-104500-hot_coffee-1a2b3c4d.json"
	if out.Filename != want {
		t.Fatalf("filename = %q, want %q", out.Filename, want)
	}

	doc, err := s.Get(context.Background(), out.Filename)
	if err != nil {
		t.Fatal(err)
	}
	var results []map[string]any
	if err := json.Unmarshal(doc, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0]["text"] != "x" {
		t.Fatalf("round trip = %v", results)
	}
}

func TestSaveRejectsEmptyResults(t *testing.T) {
	s := testSvc(t)
	_, err := s.Save(context.Background(), domain.SaveInput{Query: "q"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("code = %v, want validation", perr.CodeOf(err))
	}
}

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "search"},
		{"   ", "search"},
		{"coffee", "coffee"},
		{"hot coffee", "hot_coffee"},
		{"../../etc/passwd", "etcpasswd"},
		{"héllo wörld", "hllo_wrld"},
		{"@#$%", "search"},
		{strings.Repeat("a", 60), strings.Repeat("a", 40)},
	}
	for _, tt := range tests {
		if got := sanitizeQuery(tt.in); got != tt.want {
			t.Errorf("sanitizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	s := testSvc(t)
	times := []time.Time{
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	i := 0
	s.now = func() time.Time { t := times[i]; i++; return t }

	for range times {
		if _, err := s.Save(context.Background(), domain.SaveInput{Query: "q", Results: []any{1}}); err != nil {
			t.Fatal(err)
		}
	}

	names, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 3 {
		t.Fatalf("len = %d", len(names))
	}
	if !strings.HasPrefix(names[0], "2026-03-01-110000") ||
		!strings.HasPrefix(names[1], "2026-03-01-100000") ||
		!strings.HasPrefix(names[2], "2026-03-01-090000") {
		t.Fatalf("not newest first: %v", names)
	}
}

func TestGetUnknownIsNotFound(t *testing.T) {
	s := testSvc(t)
	_, err := s.Get(context.Background(), "nope.json")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("code = %v, want not found", perr.CodeOf(err))
	}
}

func TestBatchOrderAndWholeRequestNotFound(t *testing.T) {
	s := testSvc(t)
	ids := []string{"aaaa0000-0000-0000-0000-000000000000", "bbbb0000-0000-0000-0000-000000000000"}
	i := 0
	s.newID = func() string { id := ids[i]; i++; return id }

	first, err := s.Save(context.Background(), domain.SaveInput{Query: "one", Results: []any{1}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(context.Background(), domain.SaveInput{Query: "two", Results: []any{2}})
	if err != nil {
		t.Fatal(err)
	}

	// request order preserved even against listing order
	docs, err := s.Batch(context.Background(), []string{second.Filename, first.Filename})
	if err != nil {
		t.Fatal(err)
	}
	var v []int
	for _, d := range docs {
		var arr []int
		if err := json.Unmarshal(d, &arr); err != nil {
			t.Fatal(err)
		}
		v = append(v, arr[0])
	}
	if !reflect.DeepEqual(v, []int{2, 1}) {
		t.Fatalf("order = %v, want [2 1]", v)
	}

	// one missing name fails the whole batch
	_, err = s.Batch(context.Background(), []string{first.Filename, "missing.json"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("code = %v, want not found", perr.CodeOf(err))
	}
}

func TestLatestRoundTrip(t *testing.T) {
	s := testSvc(t)

	_, err := s.Latest(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("code before first run = %v, want not found", perr.CodeOf(err))
	}

	if err := s.PutLatest(context.Background(), []any{map[string]any{"text": "hi"}}); err != nil {
		t.Fatal(err)
	}
	doc, err := s.Latest(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var arr []map[string]any
	if err := json.Unmarshal(doc, &arr); err != nil {
		t.Fatal(err)
	}
	if len(arr) != 1 || arr[0]["text"] != "hi" {
		t.Fatalf("latest = %v", arr)
	}

	// last write wins
	if err := s.PutLatest(context.Background(), []any{}); err != nil {
		t.Fatal(err)
	}
	doc, err = s.Latest(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(doc, &arr); err != nil {
		t.Fatal(err)
	}
	if len(arr) != 0 {
		t.Fatalf("latest after overwrite = %v", arr)
	}
}
