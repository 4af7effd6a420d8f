// Package mcp exposes the payment tools over the Model Context Protocol:
// JSON-RPC 2.0 messages, newline-delimited, served on stdio by default or
// over an SSE HTTP transport.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"payumcp/internal/tools"
)

const (
	serverName      = "payu-mcp-server"
	serverVersion   = "1.0.0"
	protocolVersion = "2024-11-05"
)

// Server speaks the MCP wire protocol and dispatches tool calls to the
// payment tool service.
type Server struct {
	service *tools.Service
	logger  *zap.SugaredLogger
}

func NewServer(service *tools.Service, logger *zap.SugaredLogger) *Server {
	return &Server{service: service, logger: logger}
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      serverInfo   `json:"serverInfo"`
	Capabilities    capabilities `json:"capabilities"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type capabilities struct {
	Tools *toolsCapability `json:"tools,omitempty"`
}

type toolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type listToolsResult struct {
	Tools []toolDefinition `json:"tools"`
}

type toolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"inputSchema"`
}

type callToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type callToolResult struct {
	Content []toolContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func textResult(text string, isError bool) callToolResult {
	return callToolResult{
		Content: []toolContent{{Type: "text", Text: text}},
		IsError: isError,
	}
}

// Run serves the protocol on stdin/stdout until the context is cancelled or
// stdin closes.
func (s *Server) Run(ctx context.Context) error {
	return s.RunForIO(ctx, os.Stdin, os.Stdout)
}

// RunForIO serves the protocol over arbitrary streams; tests drive it through
// pipes. The input is read on its own goroutine so cancellation takes effect
// even while a read is blocked.
func (s *Server) RunForIO(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		for {
			line, err := reader.ReadBytes('\n')
			if err != nil {
				readErr <- err
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var line []byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err == io.EOF {
				return nil
			}
			return err
		case line = <-lines:
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			if werr := s.write(out, &response{JSONRPC: "2.0", Error: &rpcError{Code: -32700, Message: "Parse error"}}); werr != nil {
				return werr
			}
			continue
		}

		resp := s.handle(ctx, &req)
		if resp == nil {
			continue // notification
		}
		if err := s.write(out, resp); err != nil {
			return err
		}
	}
}

func (s *Server) handle(ctx context.Context, req *request) *response {
	switch req.Method {
	case "initialize":
		return &response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: initializeResult{
				ProtocolVersion: protocolVersion,
				ServerInfo:      serverInfo{Name: serverName, Version: serverVersion},
				Capabilities:    capabilities{Tools: &toolsCapability{}},
			},
		}
	case "tools/list":
		return &response{JSONRPC: "2.0", ID: req.ID, Result: listToolsResult{Tools: toolDefinitions()}}
	case "tools/call":
		return s.callTool(ctx, req)
	case "notifications/initialized":
		return nil
	default:
		return &response{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: -32601, Message: "Method not found"}}
	}
}

func (s *Server) callTool(ctx context.Context, req *request) *response {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &response{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: -32602, Message: "Invalid params"}}
	}

	s.logger.Infow("tool call", "tool", params.Name)

	text, err := s.dispatch(ctx, params.Name, params.Arguments)
	if err != nil {
		return &response{JSONRPC: "2.0", ID: req.ID, Result: textResult(fmt.Sprintf("Error: %v", err), true)}
	}
	return &response{JSONRPC: "2.0", ID: req.ID, Result: textResult(text, false)}
}

func (s *Server) write(out io.Writer, resp *response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}
