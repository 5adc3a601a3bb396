package mcp

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	policypdf "github.com/Jontyellis1212/policysprint-ai-sub000"
	"github.com/Jontyellis1212/policysprint-ai-sub000/logging"
)

func sendRequest(t *testing.T, s *Server, method string, id int, params any) jsonrpcResponse {
	t.Helper()

	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}
	reqBytes, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	reqBytes = append(reqBytes, '\n')

	var output bytes.Buffer
	s.input = bytes.NewReader(reqBytes)
	s.output = &output
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var resp jsonrpcResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling response %q: %v", output.String(), err)
	}
	return resp
}

// callTool returns the content blocks of a tools/call and its isError flag.
func callTool(t *testing.T, s *Server, name string, args map[string]any) ([]map[string]any, bool) {
	t.Helper()
	resp := sendRequest(t, s, "tools/call", 9, map[string]any{"name": name, "arguments": args})
	if resp.Error != nil {
		t.Fatalf("%s: protocol error: %s", name, resp.Error.Message)
	}
	result := resp.Result.(map[string]any)
	var blocks []map[string]any
	for _, c := range result["content"].([]any) {
		blocks = append(blocks, c.(map[string]any))
	}
	isErr, _ := result["isError"].(bool)
	return blocks, isErr
}

func fixedClock() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }

func newTestServer(opts ...policypdf.Option) *Server {
	s := NewServerWithIO(nil, nil)
	opts = append([]policypdf.Option{policypdf.WithClock(fixedClock)}, opts...)
	RegisterDefaultTools(s, opts...)
	RegisterDefaultResources(s, opts...)
	return s
}

func TestServerInitialize(t *testing.T) {
	s := newTestServer()

	resp := sendRequest(t, s, "initialize", 1, map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "1.0"},
	})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatal("result is not a map")
	}
	if result["protocolVersion"] != ProtocolVersion {
		t.Fatalf("unexpected protocol version: %v", result["protocolVersion"])
	}
	serverInfo, ok := result["serverInfo"].(map[string]any)
	if !ok || serverInfo["name"] != "policypdf-mcp" {
		t.Fatalf("unexpected serverInfo: %v", result["serverInfo"])
	}
}

func TestServerToolsListIsSorted(t *testing.T) {
	s := newTestServer()

	resp := sendRequest(t, s, "tools/list", 2, nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	tools := resp.Result.(map[string]any)["tools"].([]any)

	var names []string
	for _, tool := range tools {
		tm := tool.(map[string]any)
		names = append(names, tm["name"].(string))
		if _, ok := tm["inputSchema"].(map[string]any); !ok {
			t.Errorf("tool %v has no input schema", tm["name"])
		}
	}
	want := "inspect_pdf,parse_quiz,render_policy_pdf,render_quiz_pdf"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("tools = %s, want %s", got, want)
	}
}

func TestServerResourcesList(t *testing.T) {
	s := newTestServer()

	resp := sendRequest(t, s, "resources/list", 3, nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	resources := resp.Result.(map[string]any)["resources"].([]any)
	if len(resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resources))
	}
}

func TestServerPing(t *testing.T) {
	s := NewServerWithIO(nil, nil)

	resp := sendRequest(t, s, "ping", 4, nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
}

func TestServerUnknownMethod(t *testing.T) {
	s := NewServerWithIO(nil, nil)

	resp := sendRequest(t, s, "nonexistent/method", 5, nil)
	if resp.Error == nil {
		t.Fatal("expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Fatalf("expected error code -32601, got %d", resp.Error.Code)
	}
}

func TestServerUnknownNotificationIsIgnored(t *testing.T) {
	var out bytes.Buffer
	s := NewServerWithIO(strings.NewReader(`{"jsonrpc":"2.0","method":"notifications/cancelled"}`+"\n"), &out)
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("notification got a response: %s", out.String())
	}
}

func TestServerParseError(t *testing.T) {
	var out bytes.Buffer
	s := NewServerWithIO(strings.NewReader("{not json\n"), &out)
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	var resp jsonrpcResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Code != -32700 {
		t.Fatalf("expected parse error, got %+v", resp)
	}
}

func TestServerUnknownTool(t *testing.T) {
	s := newTestServer()

	resp := sendRequest(t, s, "tools/call", 6, map[string]any{
		"name":      "nonexistent_tool",
		"arguments": map[string]any{},
	})
	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestRenderPolicyToolBase64(t *testing.T) {
	s := newTestServer()

	blocks, isErr := callTool(t, s, "render_policy_pdf", map[string]any{
		"payload": map[string]any{
			"businessName": "Harbour Street Bakery",
			"policyText":   "1. Purpose\nUse approved tools only.",
		},
		"mode": "preview",
	})
	if isErr {
		t.Fatalf("unexpected tool error: %v", blocks)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected summary and PDF blocks, got %d", len(blocks))
	}

	var sum renderSummary
	if err := json.Unmarshal([]byte(blocks[0]["text"].(string)), &sum); err != nil {
		t.Fatal(err)
	}
	if sum.Pages != 2 || sum.Truncated {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Filename != "harbour-street-bakery-ai-policy.pdf" {
		t.Errorf("filename = %q", sum.Filename)
	}
	if !strings.HasPrefix(sum.ContentDisposition, "inline") {
		t.Errorf("preview disposition = %q", sum.ContentDisposition)
	}
	if len(sum.Sections) != 1 || sum.Sections[0].Outcome != "complete" {
		t.Errorf("sections = %+v", sum.Sections)
	}
	if blocks[1]["mimeType"] != "application/pdf" || blocks[1]["data"] == "" {
		t.Errorf("pdf block = %v", blocks[1])
	}
}

func TestRenderQuizToolWritesFileAndInspects(t *testing.T) {
	s := newTestServer()
	path := filepath.Join(t.TempDir(), "quiz.pdf")

	blocks, isErr := callTool(t, s, "render_quiz_pdf", map[string]any{
		"payload": map[string]any{
			"businessName": "Acme",
			"quizText":     "1. Who approves new AI tools?\nA) The IT manager\nB) Anyone\nCorrect answer: A",
		},
		"outputPath": path,
	})
	if isErr || len(blocks) != 1 {
		t.Fatalf("unexpected result: %v", blocks)
	}
	if !strings.Contains(blocks[0]["text"].(string), path) {
		t.Errorf("summary does not name the file: %s", blocks[0]["text"])
	}

	blocks, isErr = callTool(t, s, "inspect_pdf", map[string]any{"path": path, "text": true})
	if isErr {
		t.Fatalf("inspect failed: %v", blocks)
	}
	var info struct {
		NumPages int               `json:"numPages"`
		Metadata map[string]string `json:"metadata"`
		Pages    []string          `json:"pages"`
	}
	if err := json.Unmarshal([]byte(blocks[0]["text"].(string)), &info); err != nil {
		t.Fatal(err)
	}
	if info.NumPages != 3 || len(info.Pages) != 3 {
		t.Fatalf("pages = %d (%d texts), want 3", info.NumPages, len(info.Pages))
	}
	if !strings.Contains(info.Pages[1], "Who approves new AI tools?") {
		t.Errorf("question page text = %q", info.Pages[1])
	}
	if !strings.Contains(info.Pages[2], "1. A") {
		t.Errorf("answer key page text = %q", info.Pages[2])
	}
}

func TestRenderToolRejectsBlankPayload(t *testing.T) {
	h := logging.NewBufferedHandler(nil)
	s := newTestServer()
	s.SetLogger(slog.New(h))

	blocks, isErr := callTool(t, s, "render_policy_pdf", map[string]any{
		"payload": map[string]any{"policyText": "  "},
	})
	if !isErr {
		t.Fatal("expected a tool error")
	}
	if text := blocks[0]["text"].(string); !strings.Contains(text, "policyText must not be blank") {
		t.Errorf("error text = %q", text)
	}
	if !h.Contains("tool failed") {
		t.Errorf("failure not logged:\n%s", h.String())
	}

	_, isErr = callTool(t, s, "render_quiz_pdf", map[string]any{})
	if !isErr {
		t.Fatal("missing payload must be a tool error")
	}
}

func TestParseQuizTool(t *testing.T) {
	s := newTestServer()

	blocks, isErr := callTool(t, s, "parse_quiz", map[string]any{
		"quizText": "1. First?\nA) yes\nB) no\nCorrect answer: B\n2. Second?\nA) x\nB) y",
	})
	if isErr {
		t.Fatalf("unexpected error: %v", blocks)
	}
	var out struct {
		Questions []struct {
			Number  int    `json:"number"`
			Prompt  string `json:"prompt"`
			Correct string `json:"correct"`
		} `json:"questions"`
		AnswerKey []string `json:"answerKey"`
	}
	if err := json.Unmarshal([]byte(blocks[0]["text"].(string)), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Questions) != 2 || out.Questions[0].Correct != "B" {
		t.Fatalf("questions = %+v", out.Questions)
	}
	if strings.Join(out.AnswerKey, "|") != "1. B|2. Not provided" {
		t.Errorf("answer key = %v", out.AnswerKey)
	}
}

func TestLimitsResource(t *testing.T) {
	s := newTestServer(policypdf.WithMaxTotalPages(6), policypdf.WithMaxSectionPages(2))

	resp := sendRequest(t, s, "resources/read", 10, map[string]any{"uri": LimitsURI})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	contents := resp.Result.(map[string]any)["contents"].([]any)
	text := contents[0].(map[string]any)["text"].(string)

	var limits policypdf.Limits
	if err := json.Unmarshal([]byte(text), &limits); err != nil {
		t.Fatal(err)
	}
	if limits != (policypdf.Limits{MaxTotalPages: 6, MaxSectionPages: 2}) {
		t.Errorf("limits = %+v", limits)
	}
}

func TestTextResourceNeedsPath(t *testing.T) {
	s := newTestServer()

	resp := sendRequest(t, s, "resources/read", 11, map[string]any{"uri": TextURI})
	if resp.Error == nil || resp.Error.Code != -32603 {
		t.Fatalf("expected resource error, got %+v", resp)
	}
	resp = sendRequest(t, s, "resources/read", 12, map[string]any{"uri": "policypdf://nothing"})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("expected unknown resource, got %+v", resp)
	}
}

func TestServerMultipleRequests(t *testing.T) {
	requests := []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":4,"method":"ping"}`,
	}
	input := strings.Join(requests, "\n") + "\n"
	var output bytes.Buffer

	s := NewServerWithIO(strings.NewReader(input), &output)
	RegisterDefaultTools(s)
	RegisterDefaultResources(s)
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 responses, got %d: %s", len(lines), output.String())
	}
	for i, line := range lines {
		var resp jsonrpcResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("response %d: unmarshal error: %v\nline: %s", i, err, line)
		}
		if resp.Error != nil {
			t.Errorf("response %d: unexpected error: %s", i, resp.Error.Message)
		}
	}
}
