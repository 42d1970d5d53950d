package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/conduithq/conduit/pkg/memory"
)

// ErrorResponse is the JSON error body returned by all API endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateMemoryRequest is the body of POST /api/memories.
type CreateMemoryRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// SearchRequest is the body of POST /api/memories/search.
// When Tag is set the search matches on exact tag instead of the
// substring query.
type SearchRequest struct {
	Query string `json:"query"`
	Tag   string `json:"tag,omitempty"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListMemories returns all memories.
func (s *Server) handleListMemories(c *fiber.Ctx) error {
	memories, err := s.store.List()
	if err != nil {
		s.logger.Error("failed to list memories", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to list memories"})
	}

	if memories == nil {
		memories = []memory.Memory{}
	}

	return c.JSON(memories)
}

// handleCreateMemory persists a new memory and returns it with a 201.
func (s *Server) handleCreateMemory(c *fiber.Ctx) error {
	var req CreateMemoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "title is required"})
	}

	m := memory.New(req.Title, req.Content, req.Tags)
	if err := s.store.Save(m); err != nil {
		s.logger.Error("failed to save memory", "id", m.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to save memory"})
	}

	return c.Status(fiber.StatusCreated).JSON(m)
}

// handleGetMemory returns a single memory by its id.
func (s *Server) handleGetMemory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "id parameter required"})
	}

	m, err := s.store.Get(id)
	if err != nil {
		var notFound memory.NotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "memory not found"})
		}
		s.logger.Error("failed to get memory", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to get memory"})
	}

	return c.JSON(m)
}

// handleDeleteMemory removes a memory by its id.
func (s *Server) handleDeleteMemory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "id parameter required"})
	}

	if err := s.store.Delete(id); err != nil {
		var notFound memory.NotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "memory not found"})
		}
		s.logger.Error("failed to delete memory", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to delete memory"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleSearchMemories searches memories by substring query or exact tag.
func (s *Server) handleSearchMemories(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	var (
		results []memory.Memory
		err     error
	)
	if req.Tag != "" {
		results, err = s.store.SearchByTag(req.Tag)
	} else {
		results, err = s.store.Search(req.Query)
	}
	if err != nil {
		s.logger.Error("failed to search memories", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to search memories"})
	}

	if results == nil {
		results = []memory.Memory{}
	}

	return c.JSON(results)
}
