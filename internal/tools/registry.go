package tools

import (
	"context"
	"fmt"

	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/mcp"
)

// HandlerFunc executes a single tool call.
type HandlerFunc func(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult

type registeredTool struct {
	def     mcp.Tool
	handler HandlerFunc
}

// ToolRegistry holds tool definitions and their handlers. Registration
// order is preserved for tools/list.
type ToolRegistry struct {
	tools []registeredTool
	index map[string]int
}

// NewToolRegistry creates an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{index: make(map[string]int)}
}

// Register adds a tool. Registering the same name twice replaces the
// earlier handler but keeps the original position.
func (r *ToolRegistry) Register(def mcp.Tool, handler HandlerFunc) {
	if i, ok := r.index[def.Name]; ok {
		r.tools[i] = registeredTool{def: def, handler: handler}
		return
	}
	r.index[def.Name] = len(r.tools)
	r.tools = append(r.tools, registeredTool{def: def, handler: handler})
}

// ListTools returns all tool definitions in registration order.
func (r *ToolRegistry) ListTools() []mcp.Tool {
	defs := make([]mcp.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, t.def)
	}
	return defs
}

// Execute runs the named tool. Unknown names produce an error result,
// not a transport-level failure.
func (r *ToolRegistry) Execute(ctx context.Context, e *Executor, name string, args map[string]interface{}) (mcp.CallToolResult, error) {
	i, ok := r.index[name]
	if !ok {
		return mcp.NewErrorResult(fmt.Errorf("unknown tool: %s", name)), nil
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return r.tools[i].handler(ctx, e, args), nil
}
