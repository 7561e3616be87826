package openai

import (
	"context"
	"fmt"

	"github.com/Aditya0026/collaborative-editor/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider wraps the go-openai client. A custom BaseURL makes it
// usable against any OpenAI-compatible endpoint.
type OpenAIProvider struct {
	client    *goopenai.Client
	apiKey    string
	ModelName string
}

var _ llm.Provider = (*OpenAIProvider)(nil)

func NewOpenAIProvider(apiKey, baseURL, modelName string) *OpenAIProvider {
	var client *goopenai.Client
	if apiKey != "" {
		clientConfig := goopenai.DefaultConfig(apiKey)
		if baseURL != "" {
			clientConfig.BaseURL = baseURL
		}
		client = goopenai.NewClientWithConfig(clientConfig)
	}
	if modelName == "" {
		modelName = goopenai.GPT4oMini
	}
	return &OpenAIProvider{
		client:    client,
		apiKey:    apiKey,
		ModelName: modelName,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if p.client == nil {
		return "", llm.ErrMissingAPIKey
	}

	options := &llm.Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
