// Package mcp exposes the deformer engine as an MCP server, so agent
// tooling can drive the rescue workflow over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/Ernest-Sab/IPR-Tool/internal/runtime"
	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

// OperationResponse is the structured result of a create tool call.
type OperationResponse struct {
	Status string `json:"status" jsonschema_description:"Terminal status of the operation"`
}

// ListResponse is the structured result of list_operations.
type ListResponse struct {
	Operations []*domain.OperationRecord `json:"operations" jsonschema_description:"Recorded operations, most recent first"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	CreateSmoothingDeformer(ctx context.Context, p runtime.SmoothingParams) error
	CreateOffsetDeformer(ctx context.Context, p runtime.OffsetParams) error
	ListOperations(ctx context.Context) ([]*domain.OperationRecord, error)
}

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(engine Engine, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("iprescue-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: create_smoothing_deformer
	smoothingTool := mcp.NewTool("create_smoothing_deformer",
		mcp.WithDescription("Create a smoothing deformer on the current host selection and paint its influence from the selected components."),
		mcp.WithNumber("iterations", mcp.Description("Smoothing iterations (default 2)")),
		mcp.WithNumber("smooth_radius", mcp.Description("Rings of weight falloff around the selection (default 2, 0 for a hard edge)")),
		mcp.WithOutputSchema[OperationResponse](),
	)
	s.mcpServer.AddTool(smoothingTool, mcp.NewStructuredToolHandler(s.handleCreateSmoothing))

	// TOOL: create_offset_deformer
	offsetTool := mcp.NewTool("create_offset_deformer",
		mcp.WithDescription("Create a surface-offset deformer (Pull inflates along normals, Push deflates) on the current host selection."),
		mcp.WithString("direction", mcp.Required(), mcp.Description("Pull or Push")),
		mcp.WithNumber("strength", mcp.Description("Offset magnitude (default 1.0)")),
		mcp.WithNumber("smooth_radius", mcp.Description("Rings of weight falloff around the selection (default 2)")),
		mcp.WithOutputSchema[OperationResponse](),
	)
	s.mcpServer.AddTool(offsetTool, mcp.NewStructuredToolHandler(s.handleCreateOffset))

	// TOOL: list_operations
	listTool := mcp.NewTool("list_operations",
		mcp.WithDescription("List recorded deformer operations, most recent first."),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListOperations))
}

func (s *Server) registerResources() {
	// EXPOSE: iprescue://operations
	s.mcpServer.AddResource(mcp.NewResource("iprescue://operations", "Deformer Operation History",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		recs, err := s.engine.ListOperations(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list operations: %w", err)
		}
		jsonBytes, _ := json.Marshal(recs)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "iprescue://operations",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) handleCreateSmoothing(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (OperationResponse, error) {
	params := runtime.SmoothingParams{
		Iterations:   domain.DefaultIterations,
		SmoothRadius: domain.DefaultSmoothRadius,
	}
	if err := decodeArgs(args, &params); err != nil {
		return OperationResponse{}, err
	}

	if err := s.engine.CreateSmoothingDeformer(ctx, params); err != nil {
		return OperationResponse{}, fmt.Errorf("smoothing operation failed: %w", err)
	}
	return OperationResponse{Status: "created"}, nil
}

func (s *Server) handleCreateOffset(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (OperationResponse, error) {
	params := runtime.OffsetParams{
		Strength:     domain.DefaultStrength,
		SmoothRadius: domain.DefaultSmoothRadius,
	}
	if err := decodeArgs(args, &params); err != nil {
		return OperationResponse{}, err
	}
	direction, err := domain.ParseDirection(string(params.Direction))
	if err != nil {
		return OperationResponse{}, err
	}
	params.Direction = direction

	if err := s.engine.CreateOffsetDeformer(ctx, params); err != nil {
		return OperationResponse{}, fmt.Errorf("offset operation failed: %w", err)
	}
	return OperationResponse{Status: "created"}, nil
}

func (s *Server) handleListOperations(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	recs, err := s.engine.ListOperations(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	if recs == nil {
		recs = []*domain.OperationRecord{}
	}
	return ListResponse{Operations: recs}, nil
}

// decodeArgs maps the loosely-typed tool arguments onto a params struct,
// tolerating JSON numbers for the integer knobs.
func decodeArgs(args map[string]interface{}, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build argument decoder: %w", err)
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
