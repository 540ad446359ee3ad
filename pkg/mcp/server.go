package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/local-mcps/claude-docs-mcp/internal/common"
)

const (
	MethodToolsList = "tools/list"
	MethodToolsCall = "tools/call"
)

// Server reads one JSON request per line and writes exactly one JSON response
// per request line, in order. Requests are handled one at a time.
type Server struct {
	name    string
	version string
	tools   map[string]*Tool
	order   []string
	mu      sync.RWMutex
	input   io.Reader
	output  io.Writer
	logger  *common.Logger
}

type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema interface{} `json:"inputSchema"`
	Handler     ToolHandler `json:"-"`
}

type ToolHandler func(ctx context.Context, params map[string]interface{}) (*ToolResult, error)

type ToolResult struct {
	Content []ContentBlock `json:"content"`
}

type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response carries content, tool metadata or an error; never more than one.
type Response struct {
	Content []ContentBlock `json:"content,omitempty"`
	Tools   []*Tool        `json:"tools,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type callParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

func NewServer(name, version string) *Server {
	return &Server{
		name:    name,
		version: version,
		tools:   make(map[string]*Tool),
		input:   os.Stdin,
		output:  os.Stdout,
		logger:  common.NopLogger(),
	}
}

func (s *Server) SetIO(input io.Reader, output io.Writer) {
	s.input = input
	s.output = output
}

func (s *Server) SetLogger(logger *common.Logger) {
	s.logger = logger
}

// RegisterTool adds or replaces a tool. tools/list reports tools in first
// registration order.
func (s *Server) RegisterTool(tool *Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tools[tool.Name]; !exists {
		s.order = append(s.order, tool.Name)
	}
	s.tools[tool.Name] = tool
}

func (s *Server) Tools() []*Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]*Tool, 0, len(s.order))
	for _, name := range s.order {
		tools = append(tools, s.tools[name])
	}
	return tools
}

func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.input)
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)

	s.logger.WithFields(map[string]interface{}{
		"name":    s.name,
		"version": s.version,
	}).Info("serving requests")

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if err := s.send(s.HandleLine(ctx, line)); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// HandleLine runs one dispatch cycle for a raw request line. It always
// returns a response, whatever happens while executing the request.
func (s *Server) HandleLine(ctx context.Context, line []byte) (resp *Response) {
	start := time.Now()
	logger := s.logger.WithField("request_id", uuid.NewString())

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("handler panic: %v", r)
			resp = errorResponse(fmt.Sprintf("Server error: %v", r))
		}
		entry := logger.WithField("duration_ms", time.Since(start).Milliseconds())
		if resp.Error != "" {
			entry.WithField("error", resp.Error).Warn("request failed")
		} else {
			entry.Debug("request handled")
		}
	}()

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		logger.WithField("kind", string(common.KindProtocol)).Debugf("invalid JSON: %v", err)
		return errorResponse("Invalid JSON")
	}

	logger = logger.WithField("method", req.Method)
	return s.handleRequest(ctx, &req, logger)
}

func (s *Server) handleRequest(ctx context.Context, req *Request, logger *common.Logger) *Response {
	switch req.Method {
	case MethodToolsList:
		return s.handleToolsList()
	case MethodToolsCall:
		return s.handleToolsCall(ctx, req, logger)
	default:
		logger.WithField("kind", string(common.KindProtocol)).Debug("unknown method")
		return errorResponse("Unknown method: " + req.Method)
	}
}

func (s *Server) handleToolsList() *Response {
	return &Response{Tools: s.Tools()}
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request, logger *common.Logger) *Response {
	var params callParams
	if len(req.Params) > 0 && string(req.Params) != "null" {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			logger.WithField("kind", string(common.KindProtocol)).WithError(err).Debug("invalid params")
			return errorResponse("Invalid params")
		}
	}

	s.mu.RLock()
	tool, ok := s.tools[params.Name]
	s.mu.RUnlock()

	if !ok {
		return errorResponse("Unknown tool: " + params.Name)
	}

	if params.Arguments == nil {
		params.Arguments = map[string]interface{}{}
	}

	logger.WithField("tool", params.Name).Debug("calling tool")

	result, err := tool.Handler(ctx, params.Arguments)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"tool": params.Name,
			"kind": string(common.KindOf(err)),
		}).Debug("tool failed")
		return errorResponse(err.Error())
	}
	if result == nil {
		return errorResponse("Server error: tool " + params.Name + " returned no result")
	}

	return &Response{Content: result.Content}
}

func (s *Server) send(resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		data, _ = json.Marshal(errorResponse("Server error: " + err.Error()))
	}
	if _, err := fmt.Fprintln(s.output, string(data)); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func errorResponse(message string) *Response {
	return &Response{Error: message}
}

func TextResult(text string) *ToolResult {
	return &ToolResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}
