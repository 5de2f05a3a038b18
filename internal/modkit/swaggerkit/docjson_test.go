package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDocJSONAssemblesMutators(t *testing.T) {
	saved := mutators
	mutators = nil
	t.Cleanup(func() { mutators = saved })

	Register(func(spec map[string]any) {
		AddPath(spec, "/follow", "post", JSONOp("Actions", "Follow an account", true))
		AddPath(spec, "/analyze", "post", FormOp("Analysis", "Run analysis", "query"))
	})

	rec := httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))

	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatal(err)
	}
	paths := spec["paths"].(map[string]any)
	follow := paths["/follow"].(map[string]any)["post"].(map[string]any)
	if follow["summary"] != "Follow an account" {
		t.Fatalf("follow = %v", follow)
	}
	if _, ok := follow["requestBody"]; !ok {
		t.Fatal("follow lost its request body")
	}

	// every operation gets a default 500 wired to the error envelope
	resps := follow["responses"].(map[string]any)
	if _, ok := resps["500"]; !ok {
		t.Fatalf("responses = %v", resps)
	}

	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatal("missing ErrorResponse schema")
	}
}

func TestAddPathMergesMethods(t *testing.T) {
	spec := map[string]any{"paths": map[string]any{}}
	AddPath(spec, "/saved/{name}", "get", JSONOp("Results", "Load one", false))
	AddPath(spec, "/saved/{name}", "delete", JSONOp("Results", "Drop one", false))

	node := spec["paths"].(map[string]any)["/saved/{name}"].(map[string]any)
	if _, ok := node["get"]; !ok {
		t.Fatal("get lost")
	}
	if _, ok := node["delete"]; !ok {
		t.Fatal("delete lost")
	}
}
