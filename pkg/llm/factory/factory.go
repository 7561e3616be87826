package factory

import (
	"fmt"

	"github.com/Aditya0026/collaborative-editor/pkg/llm"
	"github.com/Aditya0026/collaborative-editor/pkg/llm/gemini"
	"github.com/Aditya0026/collaborative-editor/pkg/llm/ollama"
	"github.com/Aditya0026/collaborative-editor/pkg/llm/openai"
)

// Settings carries provider construction parameters from config.
type Settings struct {
	Provider      string // "gemini", "ollama", "openai"
	Model         string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaBaseURL string
}

// NewProvider builds the configured LLM backend. Gemini is the default
// to match the hosted deployment.
func NewProvider(s Settings) (llm.Provider, error) {
	switch s.Provider {
	case "", "gemini":
		p := gemini.NewGeminiProvider(s.GeminiAPIKey)
		if s.Model != "" {
			p.ModelName = s.Model
		}
		return p, nil
	case "ollama":
		baseURL := s.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.Model), nil
	case "openai":
		return openai.NewOpenAIProvider(s.OpenAIAPIKey, s.OpenAIBaseURL, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
