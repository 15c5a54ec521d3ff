package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stepedge/concierge"
	"github.com/stepedge/concierge/pkg/search"
)

// ChatResponse aligns with the HTTP adapter so MCP clients see the same shape.
type ChatResponse struct {
	SessionID string         `json:"session_id" jsonschema_description:"Session identifier, reuse it on the next turn"`
	Reply     string         `json:"reply" jsonschema_description:"Advisor reply for this turn"`
	Context   map[string]any `json:"context,omitempty" jsonschema_description:"Opaque session snapshot"`
}

// SearchResponse carries scored matches plus the next guided question.
type SearchResponse struct {
	Matches      []search.Match `json:"matches" jsonschema_description:"Matched products with relevance scores"`
	NextQuestion string         `json:"next_question" jsonschema_description:"Suggested follow-up question"`
}

// Server wraps the Advisor and exposes it as an MCP server.
type Server struct {
	advisor   *concierge.Advisor
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(advisor *concierge.Advisor) *Server {
	s := &Server{
		advisor:   advisor,
		mcpServer: server.NewMCPServer("concierge-mcp", strings.TrimSpace(concierge.Version)),
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
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
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
	// TOOL: chat
	chatTool := mcp.NewTool("chat",
		mcp.WithDescription("Send one message to the shopping advisor. Omit session_id to start a new conversation; pass the returned session_id on later turns."),
		mcp.WithString("message", mcp.Required(), mcp.Description("User message")),
		mcp.WithString("session_id", mcp.Description("Session ID from an earlier turn (optional)")),
		mcp.WithString("context", mcp.Description("JSON object with a previously returned session snapshot (optional)")),
		mcp.WithOutputSchema[ChatResponse](),
	)
	s.mcpServer.AddTool(chatTool, mcp.NewStructuredToolHandler(s.handleChat))

	// TOOL: start_session
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a fresh advisor session and return its ID."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := s.advisor.StartSession(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("start session failed: %v", err)), nil
		}
		return mcp.NewToolResultText(id), nil
	})

	// TOOL: search_products
	searchTool := mcp.NewTool("search_products",
		mcp.WithDescription("Free-text product search with a suggested follow-up question."),
		mcp.WithString("query", mcp.Required(), mcp.Description("What the user is looking for")),
		mcp.WithNumber("k", mcp.Description("Maximum number of matches (default 3)")),
		mcp.WithString("questions", mcp.Description("JSON array of questions already asked (optional)")),
		mcp.WithString("answers", mcp.Description("JSON array of the user's answers (optional)")),
		mcp.WithOutputSchema[SearchResponse](),
	)
	s.mcpServer.AddTool(searchTool, mcp.NewStructuredToolHandler(s.handleSearch))

	// TOOL: browse_products
	s.mcpServer.AddTool(mcp.NewTool("browse_products",
		mcp.WithDescription("List catalog products, optionally filtered by category and sorted by price or name."),
		mcp.WithString("category", mcp.Description("Category filter, case-insensitive (optional)")),
		mcp.WithString("sort_by", mcp.Description("Sort order: price or name (optional)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category := request.GetString("category", "")
		sortBy := request.GetString("sort_by", "")
		jsonBytes, _ := json.Marshal(s.advisor.Catalog().Browse(category, sortBy))
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleChat(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ChatResponse, error) {
	message, _ := args["message"].(string)
	if message == "" {
		return ChatResponse{}, fmt.Errorf("message is required")
	}

	req := concierge.TurnRequest{Message: message}
	req.SessionID, _ = args["session_id"].(string)

	if ctxStr, ok := args["context"].(string); ok && ctxStr != "" {
		if err := json.Unmarshal([]byte(ctxStr), &req.Context); err != nil {
			slog.Warn("MCP Chat: context ignored", "err", err)
			req.Context = nil
		}
	}

	resp, err := s.advisor.Chat(ctx, req)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("chat failed: %w", err)
	}

	return ChatResponse{
		SessionID: resp.SessionID,
		Reply:     resp.Reply,
		Context:   resp.Context,
	}, nil
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SearchResponse, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return SearchResponse{}, fmt.Errorf("query is required")
	}

	k := 0
	if raw, ok := args["k"].(float64); ok {
		k = int(raw)
	}

	var questions, answers []string
	if qStr, ok := args["questions"].(string); ok {
		_ = json.Unmarshal([]byte(qStr), &questions)
	}
	if aStr, ok := args["answers"].(string); ok {
		_ = json.Unmarshal([]byte(aStr), &answers)
	}

	matches, next, err := s.advisor.Search(ctx, query, k, questions, answers)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search failed: %w", err)
	}

	return SearchResponse{Matches: matches, NextQuestion: next}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: concierge://catalog
	s.mcpServer.AddResource(mcp.NewResource("concierge://catalog", "Product Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.advisor.Catalog().Products())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "concierge://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
