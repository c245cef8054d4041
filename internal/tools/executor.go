// Package tools exposes the OCS provisioning operations as MCP tools.
// Each tool validates its arguments, builds the endpoint path and payload,
// and delegates to the OCS client; results are returned unchanged.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/mcp"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/metrics"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/ocs"
)

const (
	defaultMSISDNAttempts = 10
	defaultMSISDNPrefix   = "43660"
)

// OCSClient is the downstream API surface the tools depend on. Tests
// substitute a fake implementation.
type OCSClient interface {
	Get(ctx context.Context, path string, query url.Values, transactionID string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any, transactionID string) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any, transactionID string) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body any, transactionID string) (json.RawMessage, error)
	Delete(ctx context.Context, path string, transactionID string) (json.RawMessage, error)
}

// ExecutorConfig holds the dependencies for the tool executor.
type ExecutorConfig struct {
	Client OCSClient

	// MSISDNAttempts caps the uniqueness probe loop during subscriber
	// creation. Defaults to 10.
	MSISDNAttempts int
	// MSISDNPrefix is prepended to generated candidate numbers.
	// Defaults to "43660".
	MSISDNPrefix string
}

// Executor implements mcp.ToolExecutor for the OCS provisioning tools.
type Executor struct {
	client         OCSClient
	msisdnAttempts int
	msisdnPrefix   string

	registry *ToolRegistry
}

// NewExecutor creates the executor and registers all tools.
func NewExecutor(cfg ExecutorConfig) *Executor {
	attempts := cfg.MSISDNAttempts
	if attempts <= 0 {
		attempts = defaultMSISDNAttempts
	}
	prefix := cfg.MSISDNPrefix
	if prefix == "" {
		prefix = defaultMSISDNPrefix
	}

	e := &Executor{
		client:         cfg.Client,
		msisdnAttempts: attempts,
		msisdnPrefix:   prefix,
		registry:       NewToolRegistry(),
	}
	e.registerTools()
	return e
}

// ListTools returns the list of available tools.
func (e *Executor) ListTools() []mcp.Tool {
	return e.registry.ListTools()
}

// ExecuteTool executes a tool and returns the result.
func (e *Executor) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (mcp.CallToolResult, error) {
	log.Debug().
		Str("tool", name).
		Interface("args", args).
		Msg("Executing provisioning tool")

	start := time.Now()
	result, err := e.registry.Execute(ctx, e, name, args)
	metrics.ObserveToolCall(name, err != nil || result.IsError, time.Since(start))
	return result, err
}

func (e *Executor) registerTools() {
	e.registerSubscriberTools()
	e.registerSubscriptionTools()
	e.registerBalanceTools()
	e.registerHistoryTools()
	e.registerOfferTools()
	e.registerUsageTools()
}

// Argument helpers. MCP arguments arrive as generic JSON values.

func stringArg(args map[string]interface{}, key string) string {
	v, ok := args[key].(string)
	if !ok {
		return ""
	}
	return v
}

func intArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

// txID extracts the optional caller-supplied correlation id.
func txID(args map[string]interface{}) string {
	return stringArg(args, "transaction_id")
}

// decodeArg round-trips a generic JSON argument value into a typed struct.
func decodeArg(args map[string]interface{}, key string, out any) error {
	v, ok := args[key]
	if !ok || v == nil {
		return fmt.Errorf("missing required argument: %s", key)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("invalid %s argument: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid %s argument: %w", key, err)
	}
	return nil
}

// decodePatches validates the {fieldName, fieldValue} patch list shape.
func decodePatches(args map[string]interface{}) ([]ocs.PatchOperation, error) {
	var patches []ocs.PatchOperation
	if err := decodeArg(args, "patches", &patches); err != nil {
		return nil, err
	}
	if len(patches) == 0 {
		return nil, errors.New("patches must be a non-empty list of {fieldName, fieldValue} pairs")
	}
	for i, p := range patches {
		if p.FieldName == "" {
			return nil, fmt.Errorf("patch %d is missing fieldName", i)
		}
	}
	return patches, nil
}

// rawResult wraps a raw downstream payload into a tool result. A nil
// payload (204 upstream) becomes the supplied fallback text.
func rawResult(raw json.RawMessage, emptyText string) mcp.CallToolResult {
	if raw == nil {
		return mcp.NewTextResult(emptyText)
	}
	return mcp.NewTextResult(string(raw))
}

// errorResult converts a client failure into an error tool result. API
// errors are surfaced as structured JSON so callers see the status code
// and details; anything else becomes plain text.
func errorResult(err error) mcp.CallToolResult {
	var apiErr *ocs.APIError
	if errors.As(err, &apiErr) {
		payload, marshalErr := json.Marshal(apiErr)
		if marshalErr == nil {
			return mcp.CallToolResult{
				Content: []mcp.Content{mcp.NewTextContent(string(payload))},
				IsError: true,
			}
		}
	}
	return mcp.NewErrorResult(err)
}

// invalidValueResult is the inline error object returned for bad enum
// values. It is a normal (non-error) result so the caller can read the
// valid values and retry.
func invalidValueResult(message string, key string, valid []string) mcp.CallToolResult {
	return mcp.NewJSONResult(map[string]any{
		"error": message,
		key:     valid,
	})
}
