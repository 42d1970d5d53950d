package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conduithq/conduit/pkg/memory"
)

var (
	searchToolName    = "memory_search"
	searchDescription = "Search stored memories by text or tag. Matches the query as a case-insensitive substring against titles, content, and tags. When a tag is given, returns only memories carrying exactly that tag. Use this to find relevant knowledge saved in past sessions."
)

// SearchInput represents the input arguments for the memory_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search text to match against memory titles, content, and tags"`
	Tag   string `json:"tag,omitempty" jsonschema:"an exact tag to filter by instead of the text query"`
}

// SearchOutput represents the output of the memory_search tool.
type SearchOutput struct {
	Query   string          `json:"query"`
	Results []memory.Memory `json:"results"`
	Count   int             `json:"count"`
}

// handleSearch processes a search request.
func (s *Server) handleSearch(_ context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	logger := s.config.Logger

	logger.Debug("MCP search request",
		"query", input.Query,
		"tag", input.Tag,
	)

	var (
		results []memory.Memory
		err     error
	)
	if input.Tag != "" {
		results, err = s.config.Store.SearchByTag(input.Tag)
	} else {
		results, err = s.config.Store.Search(input.Query)
	}
	if err != nil {
		logger.Error("failed to search memories", "error", err)
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Search failed: %v", err)},
			},
		}, SearchOutput{}, nil
	}

	if results == nil {
		results = []memory.Memory{}
	}

	output := SearchOutput{
		Query:   input.Query,
		Results: results,
		Count:   len(results),
	}

	// Per MCP spec: tools returning structured content should also return
	// serialized JSON in a TextContent block for backwards compatibility
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal search output", "error", err)
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize results: %v", err)},
			},
		}, SearchOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
