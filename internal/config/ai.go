package config

import "os"

// AIConfig holds the classification provider configuration.
// Constructed once in main and read-only after that.
type AIConfig struct {
	APIKey      string  `json:"-"` // Never serialize
	BaseURL     string  `json:"baseUrl"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	TimeoutMS   int     `json:"timeoutMs"`
}

// DefaultAIConfig returns the default classification provider configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GROQ_API_KEY"),
		BaseURL: getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		Model:   getEnvOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),

		// Low temperature keeps the output close to the JSON schema
		Temperature: 0.1,
		TimeoutMS:   getEnvIntOrDefault("GROQ_TIMEOUT_MS", 30000),
	}
}

// IsEnabled returns true if the provider API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ChatCompletionsEndpoint returns the full chat completions URL
func (c *AIConfig) ChatCompletionsEndpoint() string {
	return c.BaseURL + "/chat/completions"
}
