package gatewayops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient points a client at a httptest server with the default
// transport swapped for the server's.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	gw := New("gwo_test_123", WithBaseURL(srv.URL))
	return gw, srv
}

func TestNew_Defaults(t *testing.T) {
	gw := New("gwo_test_123")

	if gw.BaseURL() != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", gw.BaseURL())
	}
	if gw.MaxRetries() != DefaultMaxRetries {
		t.Errorf("expected default max retries, got %d", gw.MaxRetries())
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	gw := New("gwo_test_123", WithBaseURL("https://custom.api.com/"))

	if gw.BaseURL() != "https://custom.api.com" {
		t.Errorf("expected trailing slash trimmed, got %q", gw.BaseURL())
	}
}

func TestToolCall_EndToEnd(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody map[string]any
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":{"data":"x"},"isError":false}`))
	})

	result, err := gw.Server("filesystem").Tools().Call(context.Background(), "read_file",
		map[string]any{"path": "/data.csv"})
	if err != nil {
		t.Fatalf("tool call: %v", err)
	}

	if gotPath != "/v1/mcp/filesystem/tools/call" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer gwo_test_123" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("unexpected content type %q", gotContentType)
	}
	if gotBody["tool"] != "read_file" {
		t.Errorf("expected tool read_file in body, got %v", gotBody["tool"])
	}
	args, ok := gotBody["arguments"].(map[string]any)
	if !ok || args["path"] != "/data.csv" {
		t.Errorf("unexpected arguments in body: %v", gotBody["arguments"])
	}
	if result.IsError {
		t.Error("expected is_error false")
	}
}

func TestToolCall_AccessDenied(t *testing.T) {
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"tool_access_denied","message":"Tool requires approval","details":{"mcp_server":"filesystem","tool_name":"read_file","requires_approval":true}}}`))
	})

	_, err := gw.Server("filesystem").Tools().Call(context.Background(), "read_file", nil)

	var denied *ToolAccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected *ToolAccessDeniedError, got %v", err)
	}
	if !denied.RequiresApproval {
		t.Error("expected requires_approval true")
	}
	if denied.MCPServer != "filesystem" || denied.ToolName != "read_file" {
		t.Errorf("unexpected detail fields: %q %q", denied.MCPServer, denied.ToolName)
	}
}

func TestToolsList_MissingFieldDefaultsEmpty(t *testing.T) {
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	tools, err := gw.Server("filesystem").Tools().List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tools == nil {
		t.Fatal("expected non-nil tools slice")
	}
	if len(tools) != 0 {
		t.Errorf("expected 0 tools, got %d", len(tools))
	}
}

func TestPromptsGet_NilArgumentsSentAsEmpty(t *testing.T) {
	var gotBody map[string]any
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"messages":[{"role":"user","content":"hi"}]}`))
	})

	messages, err := gw.Server("github").Prompts().Get(context.Background(), "summarize", nil)
	if err != nil {
		t.Fatalf("get prompt: %v", err)
	}

	args, ok := gotBody["arguments"].(map[string]any)
	if !ok {
		t.Fatalf("expected arguments object in body, got %v", gotBody["arguments"])
	}
	if len(args) != 0 {
		t.Errorf("expected empty arguments, got %v", args)
	}
	if len(messages) != 1 || messages[0].Role != "user" {
		t.Errorf("unexpected messages: %v", messages)
	}
}

func TestResourcesRead_SendsURI(t *testing.T) {
	var gotBody map[string]any
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"uri":"file:///x.txt","text":"hello"}`))
	})

	content, err := gw.Server("filesystem").Resources().Read(context.Background(), "file:///x.txt")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if gotBody["uri"] != "file:///x.txt" {
		t.Errorf("expected uri in body, got %v", gotBody["uri"])
	}
	if content.Text != "hello" {
		t.Errorf("unexpected content %q", content.Text)
	}
}

func TestTracesList_QueryParams(t *testing.T) {
	var gotQuery string
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"traces":[],"total":0,"limit":10,"offset":0}`))
	})

	_, err := gw.Traces().List(context.Background(), TraceFilter{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	// No filters supplied: only limit and offset on the wire.
	if gotQuery != "limit=10&offset=0" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}

func TestTracesList_FiltersIncludedWhenSet(t *testing.T) {
	var gotQuery map[string][]string
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"traces":[],"total":0,"limit":50,"offset":0}`))
	})

	_, err := gw.Traces().List(context.Background(), TraceFilter{
		MCPServer: "filesystem",
		Status:    "error",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if got := gotQuery["mcp_server"]; len(got) != 1 || got[0] != "filesystem" {
		t.Errorf("expected mcp_server filter, got %v", got)
	}
	if got := gotQuery["status"]; len(got) != 1 || got[0] != "error" {
		t.Errorf("expected status filter, got %v", got)
	}
	if got := gotQuery["limit"]; len(got) != 1 || got[0] != "50" {
		t.Errorf("expected default limit 50, got %v", got)
	}
	if _, ok := gotQuery["operation"]; ok {
		t.Error("unset operation filter should be omitted")
	}
}

func TestTracesGet_Path(t *testing.T) {
	var gotPath string
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"id":"tr_123","mcpServer":"filesystem","operation":"tools/call","status":"success","startTime":"2026-01-01T00:00:00Z"}`))
	})

	trace, err := gw.Traces().Get(context.Background(), "tr_123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotPath != "/v1/traces/tr_123" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if trace.ID != "tr_123" {
		t.Errorf("unexpected trace id %q", trace.ID)
	}
}

func TestCostsSummary_Query(t *testing.T) {
	var gotQuery map[string][]string
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"total_cost":100.0,"total_requests":1000,"period":"month"}`))
	})

	summary, err := gw.Costs().Summary(context.Background(), "", "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if got := gotQuery["period"]; len(got) != 1 || got[0] != "month" {
		t.Errorf("expected default period month, got %v", got)
	}
	if _, ok := gotQuery["group_by"]; ok {
		t.Error("empty group_by should be omitted")
	}
	if summary.TotalCost != 100.0 {
		t.Errorf("unexpected total cost %v", summary.TotalCost)
	}
}

func TestCostsByServer_SetsGroupBy(t *testing.T) {
	var gotQuery map[string][]string
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"period":"week"}`))
	})

	if _, err := gw.Costs().ByServer(context.Background(), "week"); err != nil {
		t.Fatalf("by server: %v", err)
	}

	if got := gotQuery["group_by"]; len(got) != 1 || got[0] != "server" {
		t.Errorf("expected group_by server, got %v", got)
	}
	if got := gotQuery["period"]; len(got) != 1 || got[0] != "week" {
		t.Errorf("expected period week, got %v", got)
	}
}

func TestKeysCreate_Shape(t *testing.T) {
	var gotBody map[string]any
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"key":{"id":"key_1","name":"ci"},"token":"gwo_prd_secret"}`))
	})

	created, err := gw.Keys().Create(context.Background(), CreateKeyRequest{
		Name:        "ci",
		Environment: "production",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if gotBody["name"] != "ci" {
		t.Errorf("expected name in body, got %v", gotBody["name"])
	}
	if _, ok := gotBody["rateLimitRpm"]; ok {
		t.Error("zero rate limit should be omitted")
	}
	if created.Token != "gwo_prd_secret" {
		t.Errorf("unexpected token %q", created.Token)
	}
}

func TestTraceHeader_SentInsideScope(t *testing.T) {
	var gotTraceID string
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTraceID = r.Header.Get("X-Trace-ID")
		_, _ = w.Write([]byte(`{"tools":[]}`))
	})

	err := gw.WithTrace("batch", func(scope TraceScope) error {
		_, err := gw.Server("filesystem").Tools().List(context.Background())
		if err != nil {
			return err
		}
		if gotTraceID != scope.TraceID {
			t.Errorf("expected X-Trace-ID %q, got %q", scope.TraceID, gotTraceID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("traced call: %v", err)
	}

	// Outside any scope the header is absent.
	gotTraceID = "sentinel"
	if _, err := gw.Server("filesystem").Tools().List(context.Background()); err != nil {
		t.Fatalf("untraced call: %v", err)
	}
	if gotTraceID != "" {
		t.Errorf("expected no X-Trace-ID outside scope, got %q", gotTraceID)
	}
}

func TestDispatch_UndecodableSuccessBody(t *testing.T) {
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	})

	tools, err := gw.Server("filesystem").Tools().List(context.Background())
	if err != nil {
		t.Fatalf("expected undecodable body tolerated, got %v", err)
	}
	if len(tools) != 0 {
		t.Errorf("expected empty tools, got %d", len(tools))
	}
}

func TestDispatch_UndecodableErrorBody(t *testing.T) {
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := gw.Server("filesystem").Tools().List(context.Background())

	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServerError, got %v", err)
	}
	if se.Code != "unknown" {
		t.Errorf("expected fallback code, got %q", se.Code)
	}
}

func TestDispatch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	gw := New("gwo_test_123", WithBaseURL(url))
	_, err := gw.Server("filesystem").Tools().List(context.Background())

	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
	if errors.Unwrap(ne) == nil {
		t.Error("expected transport error preserved via Unwrap")
	}
}

func TestDispatch_TimeoutError(t *testing.T) {
	gw, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := gw.Server("filesystem").Tools().List(ctx)

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TimeoutError, got %v", err)
	}
}

func TestWithRetries_CopyOnWrite(t *testing.T) {
	gw := New("gwo_test_123")

	sc := gw.Server("filesystem")
	bumped := sc.WithRetries(7)

	if sc.Retries() != DefaultMaxRetries {
		t.Errorf("original retry budget mutated: %d", sc.Retries())
	}
	if bumped.Retries() != 7 {
		t.Errorf("expected override 7, got %d", bumped.Retries())
	}
	if bumped.Name() != "filesystem" {
		t.Errorf("expected server name carried over, got %q", bumped.Name())
	}
}
