package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubExecutor struct {
	tools    []Tool
	lastName string
	lastArgs map[string]interface{}
	result   CallToolResult
	err      error
}

func (s *stubExecutor) ListTools() []Tool {
	return s.tools
}

func (s *stubExecutor) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (CallToolResult, error) {
	s.lastName = name
	s.lastArgs = args
	return s.result, s.err
}

type stubPrompts struct{}

func (stubPrompts) ListPrompts() []Prompt {
	return []Prompt{{Name: "subscription_provisioning_workflow"}}
}

func (stubPrompts) GetPrompt(name string, args map[string]string) (GetPromptResult, error) {
	if name != "subscription_provisioning_workflow" {
		return GetPromptResult{}, fmt.Errorf("Unknown prompt: %s", name)
	}
	return GetPromptResult{
		Description: "Provisioning workflow",
		Messages: []PromptMessage{
			{Role: "user", Content: NewTextContent("offer " + args["offer_id"])},
		},
	}, nil
}

func postRPC(t *testing.T, handler http.Handler, req Request) Response {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return resp
}

func TestInitialize(t *testing.T) {
	server := NewServer(":0", &stubExecutor{}, stubPrompts{})

	resp := postRPC(t, server.Handler(), Request{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
		Params:  json.RawMessage(`{"protocolVersion":"2024-11-05","clientInfo":{"name":"test","version":"0.1"}}`),
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	var result InitializeResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.ProtocolVersion != ProtocolVersion {
		t.Errorf("expected protocol version %s, got %s", ProtocolVersion, result.ProtocolVersion)
	}
	if result.ServerInfo.Name != ServerName {
		t.Errorf("expected server name %s, got %s", ServerName, result.ServerInfo.Name)
	}
	if result.Capabilities.Tools == nil {
		t.Error("expected tools capability to be advertised")
	}
	if result.Capabilities.Prompts == nil {
		t.Error("expected prompts capability to be advertised")
	}
}

func TestListTools(t *testing.T) {
	executor := &stubExecutor{tools: []Tool{
		{Name: "lookup_subscriber"},
		{Name: "create_subscriber"},
	}}
	server := NewServer(":0", executor, stubPrompts{})

	resp := postRPC(t, server.Handler(), Request{JSONRPC: "2.0", ID: 2, Method: "tools/list"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	var result ListToolsResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(result.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(result.Tools))
	}
	if result.Tools[0].Name != "lookup_subscriber" {
		t.Errorf("expected lookup_subscriber first, got %s", result.Tools[0].Name)
	}
}

func TestCallToolForwardsArguments(t *testing.T) {
	executor := &stubExecutor{result: NewTextResult("ok")}
	server := NewServer(":0", executor, stubPrompts{})

	resp := postRPC(t, server.Handler(), Request{
		JSONRPC: "2.0",
		ID:      3,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"get_subscriber","arguments":{"subscriber_id":"SUB1"}}`),
	})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	if executor.lastName != "get_subscriber" {
		t.Errorf("expected tool name get_subscriber, got %s", executor.lastName)
	}
	if executor.lastArgs["subscriber_id"] != "SUB1" {
		t.Errorf("expected subscriber_id SUB1, got %v", executor.lastArgs["subscriber_id"])
	}

	var result CallToolResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.IsError {
		t.Error("expected success result")
	}
	if len(result.Content) != 1 || result.Content[0].Text != "ok" {
		t.Errorf("unexpected content: %+v", result.Content)
	}
}

func TestCallToolExecutionFailure(t *testing.T) {
	executor := &stubExecutor{err: fmt.Errorf("boom")}
	server := NewServer(":0", executor, stubPrompts{})

	resp := postRPC(t, server.Handler(), Request{
		JSONRPC: "2.0",
		ID:      4,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"get_subscriber","arguments":{}}`),
	})
	if resp.Error != nil {
		t.Fatalf("execution failures should become tool error results, got RPC error: %v", resp.Error)
	}

	var result CallToolResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if !result.IsError {
		t.Error("expected IsError result")
	}
}

func TestMethodNotFound(t *testing.T) {
	server := NewServer(":0", &stubExecutor{}, stubPrompts{})

	resp := postRPC(t, server.Handler(), Request{JSONRPC: "2.0", ID: 5, Method: "resources/list"})
	if resp.Error == nil {
		t.Fatal("expected method-not-found error")
	}
	if resp.Error.Code != ErrMethodNotFound {
		t.Errorf("expected code %d, got %d", ErrMethodNotFound, resp.Error.Code)
	}
}

func TestInvalidJSONRPCVersion(t *testing.T) {
	server := NewServer(":0", &stubExecutor{}, stubPrompts{})

	resp := postRPC(t, server.Handler(), Request{JSONRPC: "1.0", ID: 6, Method: "ping"})
	if resp.Error == nil {
		t.Fatal("expected invalid-request error")
	}
	if resp.Error.Code != ErrInvalidRequest {
		t.Errorf("expected code %d, got %d", ErrInvalidRequest, resp.Error.Code)
	}
}

func TestPing(t *testing.T) {
	server := NewServer(":0", &stubExecutor{}, stubPrompts{})

	resp := postRPC(t, server.Handler(), Request{JSONRPC: "2.0", ID: 7, Method: "ping"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
}

func TestGetPrompt(t *testing.T) {
	server := NewServer(":0", &stubExecutor{}, stubPrompts{})

	resp := postRPC(t, server.Handler(), Request{
		JSONRPC: "2.0",
		ID:      8,
		Method:  "prompts/get",
		Params:  json.RawMessage(`{"name":"subscription_provisioning_workflow","arguments":{"offer_id":"1000"}}`),
	})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	var result GetPromptResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(result.Messages))
	}
	if result.Messages[0].Content.Text != "offer 1000" {
		t.Errorf("unexpected prompt text: %s", result.Messages[0].Content.Text)
	}
}

func TestGetPromptUnknown(t *testing.T) {
	server := NewServer(":0", &stubExecutor{}, stubPrompts{})

	resp := postRPC(t, server.Handler(), Request{
		JSONRPC: "2.0",
		ID:      9,
		Method:  "prompts/get",
		Params:  json.RawMessage(`{"name":"nope"}`),
	})
	if resp.Error == nil {
		t.Fatal("expected error for unknown prompt")
	}
	if resp.Error.Code != ErrInvalidParams {
		t.Errorf("expected code %d, got %d", ErrInvalidParams, resp.Error.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer(":0", &stubExecutor{}, stubPrompts{})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var status map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal health body: %v", err)
	}
	if status["status"] != "ok" {
		t.Errorf("expected status ok, got %s", status["status"])
	}
}

func TestRootRejectsGET(t *testing.T) {
	server := NewServer(":0", &stubExecutor{}, stubPrompts{})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
