package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/common"
)

const ProcessToolName = "process_court_order"

// MCPServer exposes the pipeline as an MCP tool.
type MCPServer struct {
	proc      Processor
	maxBytes  int64
	logger    *slog.Logger
	mcpServer *mcpserver.MCPServer
}

func NewMCPServer(proc Processor, version string, maxBytes int64, logger *slog.Logger) *MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	s := &MCPServer{
		proc:     proc,
		maxBytes: maxBytes,
		logger:   logger,
		mcpServer: mcpserver.NewMCPServer(
			"court-orders",
			version,
			mcpserver.WithToolCapabilities(false),
		),
	}

	tool := mcp.NewTool(
		ProcessToolName,
		mcp.WithDescription("Process a court-order PDF: extract the national ID and action, resolve the customer and execute the action"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleProcess)
	return s
}

// ServeStdio blocks serving the tool on stdin/stdout.
func (s *MCPServer) ServeStdio() error {
	if err := mcpserver.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

func (s *MCPServer) handleProcess(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if constants.NormalizeExt(filepath.Ext(path)) != constants.PDFExtension {
		return mcp.NewToolResultError(unsupportedFileDetail), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot access %s: %v", path, err)), nil
	}
	if s.maxBytes > 0 && info.Size() > s.maxBytes {
		return mcp.NewToolResultError(fmt.Sprintf("file too large: %d bytes (limit %d)", info.Size(), s.maxBytes)), nil
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read %s: %v", path, err)), nil
	}

	ctx, rid := common.EnsureRequestID(ctx)
	s.logger.Info("mcp.process.start", "request_id", rid, "path", path, "bytes", len(doc))
	return mcp.NewToolResultText(s.proc.Process(ctx, doc)), nil
}
