package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/puppet"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StateURI is the resource exposing the current snapshot.
const StateURI = "puppet://state"

// TriggerResponse is the structured result of the trigger and toggle tools.
type TriggerResponse struct {
	Trigger  domain.Trigger  `json:"trigger" jsonschema_description:"The trigger that was delivered"`
	Accepted bool            `json:"accepted" jsonschema_description:"Whether the state machine acted on it"`
	State    domain.Snapshot `json:"state" jsonschema_description:"The avatar state after the trigger"`
}

// Engine defines what the MCP server needs from the avatar core.
type Engine interface {
	Dispatch(ctx context.Context, t domain.Trigger) (bool, error)
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	Clips(ctx context.Context) ([]domain.ClipName, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("puppet-mcp", strings.TrimSpace(puppet.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx ends.
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	names := make([]string, len(domain.Triggers))
	for i, t := range domain.Triggers {
		names[i] = string(t)
	}

	s.mcpServer.AddTool(mcp.NewTool("trigger",
		mcp.WithDescription("Deliver an input trigger to the avatar (pointer_enter, click, activity, toggle)."),
		mcp.WithString("trigger", mcp.Required(), mcp.Enum(names...), mcp.Description("Trigger name")),
		mcp.WithOutputSchema[TriggerResponse](),
	), mcp.NewStructuredToolHandler(s.handleTrigger))

	s.mcpServer.AddTool(mcp.NewTool("toggle_mode",
		mcp.WithDescription("Flip the avatar between idle and fight mode."),
		mcp.WithOutputSchema[TriggerResponse](),
	), mcp.NewStructuredToolHandler(s.handleToggle))

	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the current mode, hit count, timers and playing clip."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, err := s.engine.Snapshot(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("snapshot failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(snap)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("list_clips",
		mcp.WithDescription("List the clips available in the library."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		clips, err := s.engine.Clips(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(clips)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleTrigger(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TriggerResponse, error) {
	raw, _ := args["trigger"].(string)
	t, err := domain.ParseTrigger(raw)
	if err != nil {
		return TriggerResponse{}, err
	}
	return s.dispatch(ctx, t)
}

func (s *Server) handleToggle(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TriggerResponse, error) {
	return s.dispatch(ctx, domain.TriggerToggle)
}

func (s *Server) dispatch(ctx context.Context, t domain.Trigger) (TriggerResponse, error) {
	accepted, err := s.engine.Dispatch(ctx, t)
	if err != nil {
		return TriggerResponse{}, fmt.Errorf("dispatch failed: %w", err)
	}
	snap, err := s.engine.Snapshot(ctx)
	if err != nil {
		return TriggerResponse{}, fmt.Errorf("snapshot failed: %w", err)
	}
	return TriggerResponse{Trigger: t, Accepted: accepted, State: snap}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(StateURI, "Current Avatar State",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		snap, err := s.engine.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read state: %w", err)
		}
		jsonBytes, _ := json.Marshal(snap)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      StateURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
