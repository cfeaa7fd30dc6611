// Package toolserver exposes the pure generation pipeline as an MCP tool so
// agents and editor integrations can generate settings code in-process.
package toolserver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/agentic-research/settingsgen/codegen"
)

// ToolName is the name clients call.
const ToolName = "generate_settings"

// Result is the structured payload of a successful call.
type Result struct {
	CatalogFile  string `json:"catalog_file"`
	Catalog      string `json:"catalog"`
	AccessorFile string `json:"accessor_file"`
	Accessor     string `json:"accessor"`
}

// Server wraps an MCP server with the generate_settings tool registered.
type Server struct {
	mcp          *server.MCPServer
	catalogFile  string
	accessorFile string
	logger       *slog.Logger
}

// New builds the server. File names are only reported back to the caller;
// the tool never touches the filesystem.
func New(version, catalogFile, accessorFile string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		mcp:          server.NewMCPServer("settingsgen", version, server.WithToolCapabilities(false)),
		catalogFile:  catalogFile,
		accessorFile: accessorFile,
		logger:       logger,
	}
	s.mcp.AddTool(Tool(), s.handleGenerate)
	return s
}

// Tool describes generate_settings.
func Tool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Generate the Go key catalog and typed accessor for an appsettings JSON document. "+
			"Whole-line // comments are allowed in the JSON."),
		mcp.WithString("json", mcp.Required(), mcp.Description("appsettings JSON text")),
		mcp.WithString("namespace", mcp.Required(),
			mcp.Description("Dotted namespace; its last segment becomes the Go package name")),
		mcp.WithString("header_note", mcp.Description("Optional note emitted under the generated-code header")),
	)
}

// Serve speaks MCP over in/out until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}

func (s *Server) handleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonText, err := req.RequireString("json")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	namespace, err := req.RequireString("namespace")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note := req.GetString("header_note", "")

	arts, err := codegen.Generate(jsonText, namespace, note)
	if err != nil {
		s.logger.Warn("generate_settings failed", "namespace", namespace, "err", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := Result{
		CatalogFile:  s.catalogFile,
		Catalog:      arts.Catalog,
		AccessorFile: s.accessorFile,
		Accessor:     arts.Accessor,
	}
	s.logger.Info("generate_settings", "namespace", namespace)
	return mcp.NewToolResultStructured(res, res.text()), nil
}

// text is the unstructured fallback: both files, each under a banner line.
func (r Result) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "// ===== %s =====\n%s\n", r.CatalogFile, r.Catalog)
	fmt.Fprintf(&b, "// ===== %s =====\n%s", r.AccessorFile, r.Accessor)
	return b.String()
}
