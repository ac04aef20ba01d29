// Package mcp exposes the engine's catalog and composition over the Model
// Context Protocol, so editor assistants can inspect registered
// experiences and dry-run configuration.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	vitrine "github.com/vitrinehq/vitrine"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/experience"
)

// ResolveResponse is the structured output of the resolve_experience tool.
type ResolveResponse struct {
	Resolved domain.ResolvedExperience `json:"resolved" jsonschema_description:"The final effective experience configuration"`
}

// ValidateResponse is the structured output of the validate_config tool.
type ValidateResponse struct {
	Valid  bool     `json:"valid" jsonschema_description:"Whether the configuration passed strict checking"`
	Errors []string `json:"errors,omitempty" jsonschema_description:"Validation failures, one per reference"`
}

// Server exposes a vitrine Engine as an MCP server.
type Server struct {
	engine    *vitrine.Engine
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server instance.
func NewServer(engine *vitrine.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("vitrine-mcp", vitrine.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on stdin/stdout.
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

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_catalog
	s.mcpServer.AddTool(mcp.NewTool("list_catalog",
		mcp.WithDescription("List all registered experiences, transitions, behaviours and decorators with metadata."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.catalog())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: resolve_experience
	resolveTool := mcp.NewTool("resolve_experience",
		mcp.WithDescription("Resolve the effective experience for a site/page/dev configuration stack."),
		mcp.WithString("site", mcp.Description("JSON ExperienceConfig for the site layer (optional)")),
		mcp.WithString("page", mcp.Description("JSON ExperienceConfig for the page layer (optional)")),
		mcp.WithString("dev", mcp.Description("JSON DevOverride (optional)")),
		mcp.WithOutputSchema[ResolveResponse](),
	)
	s.mcpServer.AddTool(resolveTool, mcp.NewStructuredToolHandler(s.handleResolve))

	// TOOL: validate_config
	validateTool := mcp.NewTool("validate_config",
		mcp.WithDescription("Strictly validate an experience configuration against the registries."),
		mcp.WithString("config", mcp.Required(), mcp.Description("JSON ExperienceConfig to validate")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ResolveResponse, error) {
	var in experience.Inputs

	if siteStr, ok := args["site"].(string); ok && siteStr != "" {
		if err := json.Unmarshal([]byte(siteStr), &in.Site); err != nil {
			return ResolveResponse{}, fmt.Errorf("invalid site config: %w", err)
		}
	}
	if pageStr, ok := args["page"].(string); ok && pageStr != "" {
		if err := json.Unmarshal([]byte(pageStr), &in.Page); err != nil {
			return ResolveResponse{}, fmt.Errorf("invalid page config: %w", err)
		}
	}
	if devStr, ok := args["dev"].(string); ok && devStr != "" {
		var dev domain.DevOverride
		if err := json.Unmarshal([]byte(devStr), &dev); err != nil {
			return ResolveResponse{}, fmt.Errorf("invalid dev override: %w", err)
		}
		in.Dev = &dev
	}

	return ResolveResponse{Resolved: s.engine.Composer().Resolve(ctx, in)}, nil
}

func (s *Server) handleValidate(_ context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	cfgStr, _ := args["config"].(string)

	var cfg domain.ExperienceConfig
	if err := json.Unmarshal([]byte(cfgStr), &cfg); err != nil {
		return ValidateResponse{}, fmt.Errorf("invalid config: %w", err)
	}

	errs := s.engine.ValidateConfig(cfg)
	resp := ValidateResponse{Valid: len(errs) == 0}
	for _, err := range errs {
		resp.Errors = append(resp.Errors, err.Error())
	}
	return resp, nil
}

type catalogSection struct {
	ID   string      `json:"id"`
	Meta domain.Meta `json:"meta"`
}

func (s *Server) catalog() map[string][]catalogSection {
	out := make(map[string][]catalogSection)
	collect := func(name string, ids []string, meta func(string) (domain.Meta, bool)) {
		for _, id := range ids {
			m, _ := meta(id)
			out[name] = append(out[name], catalogSection{ID: id, Meta: m})
		}
	}
	collect("experiences", s.engine.Experiences().IDs(), s.engine.Experiences().Meta)
	collect("transitions", s.engine.Transitions().IDs(), s.engine.Transitions().Meta)
	collect("behaviours", s.engine.Behaviours().IDs(), s.engine.Behaviours().Meta)
	collect("decorators", s.engine.Decorators().IDs(), s.engine.Decorators().Meta)
	collect("modes", s.engine.Modes().IDs(), s.engine.Modes().Meta)
	return out
}

func (s *Server) registerResources() {
	// EXPOSE: vitrine://catalog
	s.mcpServer.AddResource(mcp.NewResource("vitrine://catalog", "Registered experience catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(s.catalog())
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "vitrine://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
