package api

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Model describes a single model in the OpenAI-compatible model list.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the response body of GET /v1/models.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// ChatMessage is a single message in a chat completion exchange.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the body of POST /v1/chat/completions.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

// ChatCompletionChoice is a single completion choice.
type ChatCompletionChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatCompletionUsage reports token usage for a completion.
type ChatCompletionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletionResponse is the body of a successful chat completion.
type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Object  string                 `json:"object"`
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   ChatCompletionUsage    `json:"usage"`
}

// EmbeddingRequest is the body of POST /v1/embeddings.
type EmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingData is a single embedding vector in an EmbeddingResponse.
type EmbeddingData struct {
	Index     int       `json:"index"`
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
}

// EmbeddingUsage reports token usage for an embeddings request.
type EmbeddingUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// EmbeddingResponse is the body of a successful embeddings request.
type EmbeddingResponse struct {
	Object string          `json:"object"`
	Data   []EmbeddingData `json:"data"`
	Model  string          `json:"model"`
	Usage  EmbeddingUsage  `json:"usage"`
}

// handleListModels advertises the models the stub endpoints respond as.
func (s *Server) handleListModels(c *fiber.Ctx) error {
	now := time.Now().Unix()

	return c.JSON(ModelList{
		Object: "list",
		Data: []Model{
			{
				ID:      s.config.ChatModel,
				Object:  "model",
				Created: now,
				OwnedBy: "conduit",
			},
			{
				ID:      s.config.EmbeddingModel,
				Object:  "model",
				Created: now,
				OwnedBy: "conduit",
			},
		},
	})
}

// handleChatCompletions is a stub completion endpoint. It does not call a
// real model; it echoes the last message back along with the titles of all
// stored memories, so OpenAI-protocol clients can exercise the memory layer.
func (s *Server) handleChatCompletions(c *fiber.Ctx) error {
	var req ChatCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	s.logger.Info("chat completion request", "model", req.Model)

	memories, err := s.store.List()
	if err != nil {
		s.logger.Error("failed to list memories", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve memories"})
	}

	last := ChatMessage{Role: "user", Content: "Hello"}
	if len(req.Messages) > 0 {
		last = req.Messages[len(req.Messages)-1]
	}

	titles := make([]string, len(memories))
	for i, m := range memories {
		titles[i] = "- " + m.Title
	}

	content := fmt.Sprintf(
		"I received your message: '%s'\n\nI have access to %d memories:\n%s\n\nHow can I help you with these memories?",
		last.Content,
		len(memories),
		strings.Join(titles, "\n"),
	)

	return c.JSON(ChatCompletionResponse{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []ChatCompletionChoice{
			{
				Index: 0,
				Message: ChatMessage{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
		Usage: ChatCompletionUsage{
			PromptTokens:     100,
			CompletionTokens: 100,
			TotalTokens:      200,
		},
	})
}

// handleEmbeddings is a stub embeddings endpoint. Vectors are deterministic
// functions of the input length so repeated requests for the same text
// produce identical embeddings.
func (s *Server) handleEmbeddings(c *fiber.Ctx) error {
	var req EmbeddingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	s.logger.Info("embedding request", "model", req.Model)

	dims := int(s.config.EmbeddingDims)
	if dims <= 0 {
		dims = 10
	}

	data := make([]EmbeddingData, len(req.Input))
	tokens := 0
	for i, text := range req.Input {
		embedding := make([]float32, dims)
		seed := float64(len(text))
		for j := range embedding {
			embedding[j] = float32(math.Sin(float64(j)*0.1 + seed*0.01))
		}

		data[i] = EmbeddingData{
			Index:     i,
			Object:    "embedding",
			Embedding: embedding,
		}
		tokens += len(text) / 4
	}

	return c.JSON(EmbeddingResponse{
		Object: "list",
		Data:   data,
		Model:  req.Model,
		Usage: EmbeddingUsage{
			PromptTokens: tokens,
			TotalTokens:  tokens,
		},
	})
}
