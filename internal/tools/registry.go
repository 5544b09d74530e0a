// ABOUTME: Tool registry and dispatcher mapping tool names to schema-described handlers.
// ABOUTME: Handlers render expected failures as text results; only integration bugs return errors.

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrUnknownTool indicates a dispatch for a name that was never
// registered. This is a caller bug and propagates to the protocol layer,
// unlike data-availability conditions which handlers render as text.
var ErrUnknownTool = errors.New("unknown tool")

// Handler executes a tool. Input is the raw JSON arguments object; each
// handler decodes its own input struct and applies defaults. Handlers
// return an error only for unexpected conditions — upstream failures and
// empty data sets become descriptive text in the Result so the calling
// agent can reason about them.
type Handler func(ctx context.Context, input json.RawMessage) (*Result, error)

// Definition is the schema catalog entry advertised via tools/list.
type Definition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// Tool pairs a definition with its handler.
type Tool struct {
	Definition Definition
	Handler    Handler
}

// Result is the content item a tool call produces. Pagination fields are
// set only by tools that page through data.
type Result struct {
	Type          string `json:"type"`
	Text          string `json:"text"`
	NextCursor    string `json:"nextCursor,omitempty"`
	PrevCursor    string `json:"prevCursor,omitempty"`
	TotalCount    int    `json:"totalCount,omitempty"`
	OriginalCount int    `json:"originalCount,omitempty"`
	Filtered      bool   `json:"filtered,omitempty"`
}

// Textf builds a plain text result.
func Textf(format string, args ...any) *Result {
	return &Result{Type: "text", Text: fmt.Sprintf(format, args...)}
}

// Registry maps tool names to handlers. It is populated once at startup
// and read-only afterwards, so dispatch needs no locking.
type Registry struct {
	tools  map[string]*Tool
	order  []string
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		tools:  make(map[string]*Tool),
		logger: logger,
	}
}

// Register adds a tool. Registering a duplicate name is a programming
// error and fails.
func (r *Registry) Register(t *Tool) error {
	name := t.Definition.Name
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// List returns every tool definition in registration order.
func (r *Registry) List() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition)
	}
	return defs
}

// Has reports whether a tool name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Dispatch invokes the named tool with args. Missing or null args are
// normalized to an empty object before the handler sees them.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (*Result, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}

	result, err := tool.Handler(ctx, args)
	if err != nil {
		r.logger.Warn("tool handler error", "tool", name, "error", err)
		return nil, err
	}
	return result, nil
}
