// ABOUTME: JSON-RPC 2.0 server implementing the MCP tool-invocation protocol over HTTP POST.
// ABOUTME: Routes initialize, tools/list, tools/call, resources/list, and prompts/list.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skotervader/smhi-mcp/internal/metrics"
	"github.com/skotervader/smhi-mcp/internal/store"
	"github.com/skotervader/smhi-mcp/internal/tools"
)

// ProtocolVersion is the MCP revision advertised in initialize responses.
const ProtocolVersion = "2025-06-18"

// Server identity reported in initialize responses.
const (
	ServerName    = "smhi-mcp"
	ServerVersion = "1.0.0"
)

// MaxRequestBodySize is the maximum allowed size for request bodies (1MB).
const MaxRequestBodySize = 1 << 20

// JSON-RPC 2.0 types

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Standard JSON-RPC error codes
const (
	JSONRPCParseError     = -32700
	JSONRPCInvalidRequest = -32600
	JSONRPCMethodNotFound = -32601
	JSONRPCInvalidParams  = -32602
	JSONRPCInternalError  = -32603
)

// MCP-specific types

// ListToolsResult is the result for tools/list.
type ListToolsResult struct {
	Tools []tools.Definition `json:"tools"`
}

// CallToolParams are the params for tools/call.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// CallToolResult is the result for tools/call.
type CallToolResult struct {
	Content []*tools.Result `json:"content"`
	IsError bool            `json:"isError,omitempty"`
}

// Config holds configuration for the MCP server.
type Config struct {
	Registry *tools.Registry
	Logger   *slog.Logger
	Metrics  *metrics.Metrics     // optional
	Counter  store.RequestCounter // optional; enables the daily ceiling
	DailyMax int                  // requests per UTC day before 429s
	Now      func() time.Time     // optional clock override
}

// Server routes JSON-RPC requests to the tool registry. It is
// transport agnostic at the HandleRequest level; ServeHTTP adds the
// HTTP POST binding with status codes and the daily request ceiling.
type Server struct {
	registry *tools.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	counter  store.RequestCounter
	dailyMax int
	now      func() time.Time
}

// NewServer creates a new MCP server with the given configuration.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		registry: cfg.Registry,
		logger:   logger,
		metrics:  cfg.Metrics,
		counter:  cfg.Counter,
		dailyMax: cfg.DailyMax,
		now:      now,
	}, nil
}

// HandleRequest processes one JSON-RPC message. The second return is
// false when the message was a notification and no response may be
// sent; malformed bodies still produce an error response with a null id.
func (s *Server) HandleRequest(ctx context.Context, body []byte) (*JSONRPCResponse, bool) {
	var req JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return errorResponse(nil, JSONRPCParseError, "invalid JSON"), true
	}

	if req.JSONRPC != "2.0" {
		return errorResponse(req.ID, JSONRPCInvalidRequest, "invalid JSON-RPC version"), true
	}

	isNotification := len(req.ID) == 0 || string(req.ID) == "null"
	if isNotification {
		if strings.HasPrefix(req.Method, "notifications/") {
			s.logger.Debug("accepted notification", "method", req.Method)
		} else {
			s.logger.Warn("received notification for non-notification method", "method", req.Method)
		}
		return nil, false
	}

	s.metrics.Request(req.Method)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req), true
	case "tools/list":
		return s.handleToolsList(req), true
	case "tools/call":
		return s.handleToolsCall(ctx, req), true
	case "resources/list":
		return resultResponse(req.ID, map[string]any{"resources": []any{}}), true
	case "prompts/list":
		return resultResponse(req.ID, map[string]any{"prompts": []any{}}), true
	default:
		return errorResponse(req.ID, JSONRPCMethodNotFound, "method not found"), true
	}
}

// handleInitialize handles the MCP initialize handshake.
func (s *Server) handleInitialize(req JSONRPCRequest) *JSONRPCResponse {
	s.logger.Info("MCP client initialized", "protocol_version", ProtocolVersion)
	return resultResponse(req.ID, map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{
				"listChanged": true,
			},
		},
		"serverInfo": map[string]any{
			"name":    ServerName,
			"version": ServerVersion,
		},
	})
}

// handleToolsList handles tools/list requests.
func (s *Server) handleToolsList(req JSONRPCRequest) *JSONRPCResponse {
	defs := s.registry.List()
	s.logger.Debug("tools/list", "count", len(defs))
	return resultResponse(req.ID, ListToolsResult{Tools: defs})
}

// handleToolsCall handles tools/call requests.
func (s *Server) handleToolsCall(ctx context.Context, req JSONRPCRequest) *JSONRPCResponse {
	var params CallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, JSONRPCInvalidParams, "invalid params")
		}
	}
	if params.Name == "" {
		return errorResponse(req.ID, JSONRPCInvalidParams, "tool name is required")
	}

	requestID := uuid.New().String()
	s.logger.Debug("tools/call", "tool_name", params.Name, "request_id", requestID)
	s.metrics.ToolCall(params.Name)

	result, err := s.registry.Dispatch(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.toolError(req.ID, params.Name, requestID, err)
	}

	s.logger.Debug("tools/call complete", "tool_name", params.Name, "request_id", requestID)
	return resultResponse(req.ID, CallToolResult{Content: []*tools.Result{result}})
}

// toolError maps tool execution failures to JSON-RPC errors.
func (s *Server) toolError(id json.RawMessage, toolName, requestID string, err error) *JSONRPCResponse {
	s.logger.Warn("tool execution failed",
		"tool_name", toolName,
		"request_id", requestID,
		"error", err,
	)

	code := JSONRPCInternalError
	message := "tool execution failed"

	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		code = JSONRPCInvalidParams
		message = "tool not found"
	case errors.Is(err, context.DeadlineExceeded):
		message = "tool execution timed out"
	case errors.Is(err, context.Canceled):
		message = "request cancelled"
	}

	return errorResponse(id, code, message)
}

// ServeHTTP implements the HTTP POST binding. Notifications get a 204
// with no body; everything else gets a 200 with a JSON-RPC envelope.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.allowRequest(r.Context()) {
		s.metrics.RateLimited()
		http.Error(w, "Daily request limit exceeded", http.StatusTooManyRequests)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		writeResponse(w, s.logger, errorResponse(nil, JSONRPCParseError, "failed to read request body"))
		return
	}
	if int64(len(body)) > MaxRequestBodySize {
		writeResponse(w, s.logger, errorResponse(nil, JSONRPCInvalidRequest, "request body too large"))
		return
	}

	resp, ok := s.HandleRequest(r.Context(), body)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeResponse(w, s.logger, resp)
}

// allowRequest consults the daily request counter. A counter failure
// fails open: one missed count is better than a hard outage.
func (s *Server) allowRequest(ctx context.Context) bool {
	if s.counter == nil || s.dailyMax <= 0 {
		return true
	}
	day := s.now().UTC().Format("2006-01-02")
	count, err := s.counter.CheckAndIncrement(ctx, day)
	if err != nil {
		s.logger.Warn("request counter failed", "error", err)
		return true
	}
	return count <= s.dailyMax
}

func resultResponse(id json.RawMessage, result any) *JSONRPCResponse {
	return &JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func errorResponse(id json.RawMessage, code int, message string) *JSONRPCResponse {
	if id == nil {
		id = json.RawMessage("null")
	}
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	}
}

func writeResponse(w http.ResponseWriter, logger *slog.Logger, resp *JSONRPCResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Warn("failed to encode JSON-RPC response", "error", err)
	}
}
