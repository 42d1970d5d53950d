package config

const (
	defaultAPIListen       = ":3000"
	defaultClientAPITarget = "http://localhost:3000"

	// The stub responders mimic these OpenAI model names so existing
	// clients can point at conduit without configuration changes.
	defaultChatModel           = "gpt-3.5-turbo"
	defaultEmbeddingModel      = "text-embedding-ada-002"
	defaultEmbeddingDimensions = 10
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
		Chat: ChatConfig{
			Model: defaultChatModel,
		},
		Embedding: EmbeddingConfig{
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
	}
}
