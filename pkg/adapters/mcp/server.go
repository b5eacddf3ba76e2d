// Package mcp exposes the renderer to MCP clients.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/kinetree/internal/logging"
	"github.com/aretw0/kinetree/pkg/kinematic"
	"github.com/aretw0/kinetree/pkg/urdf"
)

// PartsURI is the resource listing the part library.
const PartsURI = "kinetree://parts"

// Compiler turns a description document into a robot.
type Compiler interface {
	Compile(ctx context.Context, data []byte) (*kinematic.Robot, error)
}

// PartCatalog lists the parts descriptions may include.
type PartCatalog interface {
	ListParts(ctx context.Context) ([]string, error)
}

// Server exposes a Compiler as an MCP server.
type Server struct {
	compiler  Compiler
	parts     PartCatalog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithParts enables list_parts and the parts resource.
func WithParts(parts PartCatalog) Option {
	return func(s *Server) { s.parts = parts }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance.
func NewServer(compiler Compiler, version string, opts ...Option) *Server {
	s := &Server{
		compiler:  compiler,
		mcpServer: server.NewMCPServer("kinetree-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, mainly for in-process clients.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("render_urdf",
		mcp.WithDescription("Compile a YAML robot description and return the URDF document."),
		mcp.WithString("description", mcp.Required(), mcp.Description("The robot description (YAML or JSON)")),
		mcp.WithString("indent", mcp.Description("Indent width, 'tab' or 'flat' (default 2)")),
		mcp.WithString("materials", mcp.Description("Material placement: all, multi or inline")),
		mcp.WithString("target", mcp.Description("Document consumer: standard or gazebo")),
	), s.handleRender)

	s.mcpServer.AddTool(mcp.NewTool("inspect_tree",
		mcp.WithDescription("Compile a robot description and list its links, joints and materials."),
		mcp.WithString("description", mcp.Required(), mcp.Description("The robot description (YAML or JSON)")),
		mcp.WithOutputSchema[kinematic.Overview](),
	), mcp.NewStructuredToolHandler(s.handleInspect))

	if s.parts != nil {
		s.mcpServer.AddTool(mcp.NewTool("list_parts",
			mcp.WithDescription("List the part ids a joint may include with `part:`."),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ids, err := s.parts.ListParts(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("list parts failed: %v", err)), nil
			}
			data, _ := json.Marshal(ids)
			return mcp.NewToolResultText(string(data)), nil
		})
	}
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg, err := configFromArgs(request.GetString("indent", ""), request.GetString("materials", ""), request.GetString("target", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	robot, err := s.compiler.Compile(ctx, []byte(description))
	if err != nil {
		s.logger.Warn("MCP render: compile failed", "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("compile failed: %v", err)), nil
	}
	out, err := urdf.Marshal(robot, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (kinematic.Overview, error) {
	description, _ := args["description"].(string)
	if description == "" {
		return kinematic.Overview{}, errors.New("description is required")
	}
	robot, err := s.compiler.Compile(ctx, []byte(description))
	if err != nil {
		return kinematic.Overview{}, fmt.Errorf("compile failed: %w", err)
	}
	return robot.Overview(), nil
}

func configFromArgs(indent, materials, target string) (urdf.Config, error) {
	in, err := urdf.ParseIndent(indent)
	if err != nil {
		return urdf.Config{}, err
	}
	refs, err := urdf.ParseMaterialReferences(materials)
	if err != nil {
		return urdf.Config{}, err
	}
	t, err := urdf.ParseTarget(target)
	if err != nil {
		return urdf.Config{}, err
	}
	return urdf.Config{Indent: in, MaterialReferences: refs, Target: t}, nil
}

func (s *Server) registerResources() {
	if s.parts == nil {
		return
	}
	s.mcpServer.AddResource(mcp.NewResource(PartsURI, "Part Library",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.parts.ListParts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list parts: %w", err)
		}
		data, _ := json.Marshal(ids)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PartsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
