package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conduithq/conduit/pkg/memory"
)

var (
	recallToolName    = "memory_recall"
	recallDescription = "Recall a single stored memory by its id. Returns the full memory document including title, content, tags, and timestamps. Use this to retrieve the complete text of a memory found via memory_search."
)

// RecallInput represents the input arguments for the memory_recall tool.
type RecallInput struct {
	ID string `json:"id" jsonschema:"the id of the memory to recall"`
}

// RecallOutput represents the structured output of a memory recall.
type RecallOutput struct {
	Memory memory.Memory `json:"memory"`
}

// handleRecall processes a recall request for a single memory.
func (s *Server) handleRecall(_ context.Context, _ *mcp.CallToolRequest, input RecallInput) (*mcp.CallToolResult, RecallOutput, error) {
	if input.ID == "" {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: "id is required"},
			},
		}, RecallOutput{}, nil
	}

	m, err := s.config.Store.Get(input.ID)
	if err != nil {
		var notFound memory.NotFoundError
		if errors.As(err, &notFound) {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{
					&mcp.TextContent{Text: fmt.Sprintf("No memory with id %s", input.ID)},
				},
			}, RecallOutput{}, nil
		}

		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Memory recall failed: %v", err)},
			},
		}, RecallOutput{}, nil
	}

	output := RecallOutput{Memory: m}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize results: %v", err)},
			},
		}, RecallOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
