package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/flowguard"
	"github.com/aretw0/flowguard/pkg/domain"
	"github.com/aretw0/flowguard/pkg/ports"
)

// ValidateResponse aligns with the HTTP API and adds the per-node projection.
type ValidateResponse struct {
	FlowID  string             `json:"flowId,omitempty" jsonschema_description:"ID of the validated flow"`
	Result  domain.Result      `json:"result" jsonschema_description:"Validation report grouped by severity"`
	Markers domain.NodeMarkers `json:"markers" jsonschema_description:"Nodes carrying errors and warnings"`
}

// ValidateArgs are the arguments of the validate_flow tool.
type ValidateArgs struct {
	Flow string `json:"flow"`
}

// StoredArgs are the arguments of the validate_stored_flow tool.
type StoredArgs struct {
	ID string `json:"id"`
}

// Server exposes the validation engine as an MCP Server.
type Server struct {
	validator *flowguard.Validator
	loader    ports.FlowLoader
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. The loader is optional; without it
// only inline flows can be validated.
func NewServer(validator *flowguard.Validator, loader ports.FlowLoader) *Server {
	if validator == nil {
		validator = flowguard.New()
	}
	s := &Server{
		validator: validator,
		loader:    loader,
		mcpServer: server.NewMCPServer("flowguard-mcp", strings.TrimSpace(flowguard.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE, until ctx is canceled.
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
		slog.Info("MCP Server listening (SSE)", "address", addr)
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
	// TOOL: validate_flow
	validateTool := mcp.NewTool("validate_flow",
		mcp.WithDescription("Validate a chat automation flow (JSON with nodes and edges) and report errors, warnings and affected nodes."),
		mcp.WithString("flow", mcp.Required(), mcp.Description(`Flow document as JSON: {"nodes":[{"id","type","data"}],"edges":[{"from","to"}]}`)),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	if s.loader == nil {
		return
	}

	// TOOL: validate_stored_flow
	storedTool := mcp.NewTool("validate_stored_flow",
		mcp.WithDescription("Validate a flow from the configured repository by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Flow ID")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(storedTool, mcp.NewStructuredToolHandler(s.handleValidateStored))

	// TOOL: list_flows
	s.mcpServer.AddTool(mcp.NewTool("list_flows",
		mcp.WithDescription("List the IDs of the flows available in the configured repository."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.loader.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(ids)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (ValidateResponse, error) {
	if strings.TrimSpace(args.Flow) == "" {
		return ValidateResponse{}, errors.New("flow is required")
	}

	var flow domain.Flow
	if err := json.Unmarshal([]byte(args.Flow), &flow); err != nil {
		return ValidateResponse{}, fmt.Errorf("flow is not valid JSON: %w", err)
	}
	// Agents often omit empty collections.
	flow.Normalize()

	return s.validate(&flow)
}

func (s *Server) handleValidateStored(ctx context.Context, request mcp.CallToolRequest, args StoredArgs) (ValidateResponse, error) {
	flow, err := s.loader.Load(ctx, args.ID)
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("load failed: %w", err)
	}
	return s.validate(flow)
}

func (s *Server) validate(flow *domain.Flow) (ValidateResponse, error) {
	res, err := s.validator.Validate(flow)
	if err != nil {
		return ValidateResponse{}, err
	}
	return ValidateResponse{
		FlowID:  flow.ID,
		Result:  res,
		Markers: domain.GroupIssuesByNode(res),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: flowguard://limits
	s.mcpServer.AddResource(mcp.NewResource("flowguard://limits", "Validation Limits",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.validator.Limits())
		if err != nil {
			return nil, fmt.Errorf("failed to encode limits: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "flowguard://limits",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
