// Package api provides the HTTP API server for managing and querying memories.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":3000")
	ListenAddr string

	// ChatModel is the model name reported by the OpenAI-compatible
	// chat completion endpoint.
	ChatModel string

	// EmbeddingModel is the model name reported by the OpenAI-compatible
	// embeddings endpoint.
	EmbeddingModel string

	// EmbeddingDims is the number of dimensions returned per embedding.
	EmbeddingDims uint
}
