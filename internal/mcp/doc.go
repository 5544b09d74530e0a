// Package mcp implements a JSON-RPC 2.0 server speaking the Model
// Context Protocol over HTTP POST. The protocol router is transport
// agnostic: HandleRequest maps one request body to at most one
// response, and the HTTP handler wraps it with status codes and the
// daily request ceiling.
package mcp
