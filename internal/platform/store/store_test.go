package store

import (
	"path/filepath"
	"testing"

	perr "skylens/internal/platform/errors"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	st, err := Open(Config{
		ResultsDir: filepath.Join(root, "saved_results"),
		ScratchDir: filepath.Join(root, "scratch"),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return st
}

func TestOpenRequiresDirs(t *testing.T) {
	if _, err := Open(Config{}); !perr.IsCode(err, perr.ErrorCodeStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	st := openTemp(t)

	type doc struct {
		Query string   `json:"query"`
		Posts []string `json:"posts"`
	}
	in := doc{Query: "rust", Posts: []string{"a", "b"}}
	if err := st.Results.WriteJSON("2026-01-02-030405-rust-deadbeef.json", in); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out doc
	if err := st.Results.ReadJSON("2026-01-02-030405-rust-deadbeef.json", &out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Query != in.Query || len(out.Posts) != 2 || out.Posts[1] != "b" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestReadMissingIsNotFound(t *testing.T) {
	st := openTemp(t)
	if _, err := st.Results.ReadRaw("nope.json"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNameGuard(t *testing.T) {
	st := openTemp(t)
	for _, name := range []string{"", ".", "..", "../escape.json", "a/b.json", `a\b.json`} {
		if _, err := st.Results.ReadRaw(name); !perr.IsCode(err, perr.ErrorCodeNotFound) {
			t.Fatalf("name %q should be rejected as not found, got %v", name, err)
		}
		if err := st.Results.WriteJSON(name, 1); !perr.IsCode(err, perr.ErrorCodeNotFound) {
			t.Fatalf("write of %q should be rejected, got %v", name, err)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	st := openTemp(t)
	names := []string{
		"2026-01-01-000000-old-aaaaaaaa.json",
		"2026-03-01-000000-new-bbbbbbbb.json",
		"2026-02-01-000000-mid-cccccccc.json",
	}
	for _, n := range names {
		if err := st.Results.WriteJSON(n, []int{1}); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
	// non-json and dotfiles are ignored
	if err := st.Results.writeRaw("notes.txt", []byte("x")); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	got, err := st.Results.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{
		"2026-03-01-000000-new-bbbbbbbb.json",
		"2026-02-01-000000-mid-cccccccc.json",
		"2026-01-01-000000-old-aaaaaaaa.json",
	}
	if len(got) != len(want) {
		t.Fatalf("list = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list[%d] = %q want %q", i, got[i], want[i])
		}
	}
}

func TestExists(t *testing.T) {
	st := openTemp(t)
	if st.Scratch.Exists("latest.json") {
		t.Fatalf("scratch should start empty")
	}
	if err := st.Scratch.WriteJSON("latest.json", map[string]int{"n": 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !st.Scratch.Exists("latest.json") {
		t.Fatalf("expected scratch file to exist")
	}
}
