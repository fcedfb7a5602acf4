package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/notestore"
	"github.com/starford/raido/internal/xcallback"
)

// fakeDispatcher records dispatched URLs instead of touching the OS.
type fakeDispatcher struct {
	urls    []string
	fail    bool
	failMsg string
}

func (f *fakeDispatcher) Open(_ context.Context, url string) xcallback.Result {
	f.urls = append(f.urls, url)
	if f.fail {
		return xcallback.Result{Err: f.failMsg}
	}
	return xcallback.Result{OK: true}
}

func testServer(t *testing.T) (*Server, *notestore.Store, *fakeDispatcher) {
	t.Helper()
	store := notestore.New()
	fake := &fakeDispatcher{}
	return New(store, fake), store, fake
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	switch name {
	case "add-note":
		return srv.addNote(ctx, req)
	case "create-agenda-note":
		return srv.createAgendaNote(ctx, req)
	case "create-agenda-project":
		return srv.createAgendaProject(ctx, req)
	case "open-agenda-note":
		return srv.openAgendaNote(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
		return nil, nil
	}
}

func mustCallTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	r, err := callTool(t, srv, name, args)
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return r
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func readResource(t *testing.T, srv *Server, uri string) ([]mcp.ResourceContents, error) {
	t.Helper()
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return srv.readNoteResource(context.Background(), req)
}

func TestAddNoteAndReadResource(t *testing.T) {
	srv, _, _ := testServer(t)

	r := mustCallTool(t, srv, "add-note", map[string]any{"name": "foo", "content": "bar"})
	if got := resultText(r); got != "Added note 'foo' with content: bar" {
		t.Errorf("add result = %q", got)
	}

	contents, err := readResource(t, srv, "note://internal/foo")
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents type = %T", contents[0])
	}
	if tc.Text != "bar" {
		t.Errorf("text = %q, want bar", tc.Text)
	}
	if tc.MIMEType != "text/plain" {
		t.Errorf("mime = %q", tc.MIMEType)
	}
}

func TestAddNoteMissingFields(t *testing.T) {
	srv, store, _ := testServer(t)

	_, err := callTool(t, srv, "add-note", map[string]any{"name": "foo"})
	if err == nil {
		t.Fatal("missing content should fail")
	}
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("error class = %v", err)
	}
	if !strings.Contains(err.Error(), "content") {
		t.Errorf("error should name the missing field: %v", err)
	}
	if store.Len() != 0 {
		t.Error("failed add must not mutate the store")
	}

	_, err = callTool(t, srv, "add-note", map[string]any{"name": "", "content": ""})
	if err == nil {
		t.Fatal("empty fields should fail")
	}
	for _, field := range []string{"name", "content"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should name %q: %v", field, err)
		}
	}
}

func TestAddNoteOverwrite(t *testing.T) {
	srv, store, _ := testServer(t)

	mustCallTool(t, srv, "add-note", map[string]any{"name": "a", "content": "1"})
	mustCallTool(t, srv, "add-note", map[string]any{"name": "b", "content": "2"})
	mustCallTool(t, srv, "add-note", map[string]any{"name": "a", "content": "3"})

	if store.Len() != 2 {
		t.Errorf("store size = %d, want 2", store.Len())
	}
	got, _ := store.Get("a")
	if got != "3" {
		t.Errorf("overwritten content = %q, want 3", got)
	}
}

func TestListResourcesAfterAdd(t *testing.T) {
	srv, _, _ := testServer(t)
	mustCallTool(t, srv, "add-note", map[string]any{"name": "foo", "content": "bar"})

	ctx := context.Background()
	srv.MCPServer().HandleMessage(ctx, json.RawMessage(
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0.0.0"}}}`))
	resp := srv.MCPServer().HandleMessage(ctx,
		json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"resources/list"}`))
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(raw), "note://internal/foo"); n != 1 {
		t.Errorf("resources/list contains %d descriptors with the note URI, want 1: %s", n, raw)
	}
}

func TestReadResourceWrongScheme(t *testing.T) {
	srv, _, _ := testServer(t)
	_, err := readResource(t, srv, "other://x")
	if err == nil {
		t.Fatal("wrong scheme should fail")
	}
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("error class = %v", err)
	}
	if !strings.Contains(err.Error(), "other") {
		t.Errorf("error should name the scheme: %v", err)
	}
}

func TestReadResourceMissing(t *testing.T) {
	srv, _, _ := testServer(t)
	_, err := readResource(t, srv, "note://internal/missing")
	if err == nil {
		t.Fatal("missing note should fail")
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error class = %v", err)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error should name the note: %v", err)
	}
}

func getPrompt(t *testing.T, srv *Server, args map[string]string) string {
	t.Helper()
	req := mcp.GetPromptRequest{}
	req.Params.Name = "summarize-notes"
	req.Params.Arguments = args
	res, err := srv.summarizeNotes(context.Background(), req)
	if err != nil {
		t.Fatalf("get prompt: %v", err)
	}
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T", res.Messages[0].Content)
	}
	return tc.Text
}

func TestSummarizeNotesBrief(t *testing.T) {
	srv, _, _ := testServer(t)
	mustCallTool(t, srv, "add-note", map[string]any{"name": "foo", "content": "bar"})

	text := getPrompt(t, srv, nil)
	want := "Here are the current notes to summarize:\n\n- foo: bar"
	if text != want {
		t.Errorf("prompt = %q, want %q", text, want)
	}
}

func TestSummarizeNotesDetailed(t *testing.T) {
	srv, _, _ := testServer(t)
	mustCallTool(t, srv, "add-note", map[string]any{"name": "first", "content": "one"})
	mustCallTool(t, srv, "add-note", map[string]any{"name": "second", "content": "two"})

	text := getPrompt(t, srv, map[string]string{"style": "detailed"})
	wantHeader := "Here are the current notes to summarize: Give extensive details.\n\n"
	if !strings.HasPrefix(text, wantHeader) {
		t.Errorf("prompt header = %q", text)
	}
	if got := strings.TrimPrefix(text, wantHeader); got != "- first: one\n- second: two" {
		t.Errorf("note listing = %q", got)
	}
}

func TestCreateAgendaNoteDispatchesURL(t *testing.T) {
	srv, _, fake := testServer(t)

	r := mustCallTool(t, srv, "create-agenda-note", map[string]any{"title": "A B", "text": "C"})
	if got := resultText(r); got != "Created note 'A B' in Agenda" {
		t.Errorf("result = %q", got)
	}
	if len(fake.urls) != 1 {
		t.Fatalf("dispatched %d URLs, want 1", len(fake.urls))
	}
	want := "agenda://x-callback-url/create-note?title=A%20B&text=C"
	if fake.urls[0] != want {
		t.Errorf("url = %q, want %q", fake.urls[0], want)
	}
}

func TestCreateAgendaNoteMissingText(t *testing.T) {
	srv, _, fake := testServer(t)

	_, err := callTool(t, srv, "create-agenda-note", map[string]any{"title": "T"})
	if err == nil {
		t.Fatal("missing text should fail")
	}
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("error class = %v", err)
	}
	if len(fake.urls) != 0 {
		t.Error("no URL may be dispatched on validation failure")
	}
}

func TestCreateAgendaProjectFailure(t *testing.T) {
	srv, _, fake := testServer(t)
	fake.fail = true
	fake.failMsg = "exit status 1: app not installed"

	r := mustCallTool(t, srv, "create-agenda-project", map[string]any{"title": "P"})
	if !r.IsError {
		t.Error("dispatch failure should be flagged on the tool result")
	}
	text := resultText(r)
	if !strings.Contains(text, "Failed to create project in Agenda") {
		t.Errorf("result = %q", text)
	}
	if !strings.Contains(text, "app not installed") {
		t.Errorf("result should embed the dispatcher error: %q", text)
	}
}

func TestOpenAgendaNoteRequiresTitleOrIdentifier(t *testing.T) {
	srv, _, fake := testServer(t)

	_, err := callTool(t, srv, "open-agenda-note", map[string]any{"project_title": "Work"})
	if err == nil {
		t.Fatal("neither title nor identifier should fail")
	}
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("error class = %v", err)
	}
	if len(fake.urls) != 0 {
		t.Error("no URL may be dispatched before the precondition passes")
	}
}

func TestOpenAgendaNoteByIdentifier(t *testing.T) {
	srv, _, fake := testServer(t)

	r := mustCallTool(t, srv, "open-agenda-note", map[string]any{
		"identifier":      "ABC-123",
		"separate_window": true,
	})
	if got := resultText(r); got != "Opened note 'ABC-123' in Agenda" {
		t.Errorf("result = %q", got)
	}
	want := "agenda://x-callback-url/open-note?identifier=ABC-123&separate-window=true"
	if fake.urls[0] != want {
		t.Errorf("url = %q, want %q", fake.urls[0], want)
	}
}

func TestBooleanArgumentsRenderLiterally(t *testing.T) {
	srv, _, fake := testServer(t)

	mustCallTool(t, srv, "create-agenda-note", map[string]any{
		"title":  "T",
		"text":   "x",
		"pinned": false,
	})
	want := "agenda://x-callback-url/create-note?title=T&text=x&pinned=false"
	if fake.urls[0] != want {
		t.Errorf("url = %q, want %q", fake.urls[0], want)
	}
}

func TestNonBooleanForBooleanFieldRejected(t *testing.T) {
	srv, _, fake := testServer(t)

	_, err := callTool(t, srv, "create-agenda-note", map[string]any{
		"title":  "T",
		"text":   "x",
		"pinned": "yes",
	})
	if err == nil {
		t.Fatal("string in a boolean field should be rejected")
	}
	if len(fake.urls) != 0 {
		t.Error("no URL may be dispatched for malformed arguments")
	}
}
