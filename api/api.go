package api

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/conduithq/conduit/api/mcp"
	"github.com/conduithq/conduit/pkg/memory"
)

// Server is the API server for managing and querying the conduit memory store
type Server struct {
	config Config
	store  *memory.Store
	logger *slog.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The store is injected to allow sharing with other components
// (e.g., the CLI when running in the same process).
func NewServer(config Config, store *memory.Store, logger *slog.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	s := &Server{
		config: config,
		store:  store,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)

	app.Get("/api/memories", s.handleListMemories)
	app.Post("/api/memories", s.handleCreateMemory)
	app.Post("/api/memories/search", s.handleSearchMemories)
	app.Get("/api/memories/:id", s.handleGetMemory)
	app.Delete("/api/memories/:id", s.handleDeleteMemory)

	// OpenAI-compatible surface for clients that speak that protocol.
	// Memory routes are mirrored here so such clients reach everything
	// from a single base URL.
	app.Get("/v1/models", s.handleListModels)
	app.Post("/v1/chat/completions", s.handleChatCompletions)
	app.Post("/v1/embeddings", s.handleEmbeddings)
	app.Get("/v1/memories", s.handleListMemories)
	app.Post("/v1/memories", s.handleCreateMemory)
	app.Get("/v1/memories/:id", s.handleGetMemory)
	app.Delete("/v1/memories/:id", s.handleDeleteMemory)

	mcpServer, err := mcp.NewServer(mcp.Config{
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create MCP server: %w", err)
	}
	app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
