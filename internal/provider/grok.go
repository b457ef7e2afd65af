package provider

import (
	"context"
	"fmt"
	"strings"

	"naomi/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/trace"
)

// GrokClient talks to xAI's OpenAI-compatible chat endpoint. Enabled is
// false without an API key and callers fall back to data summaries.
type GrokClient struct {
	tracer  trace.Tracer
	client  openai.Client
	model   string
	enabled bool
}

func NewGrokClient(tracer trace.Tracer, apiKey, model, baseURL string) *GrokClient {
	return &GrokClient{
		tracer: tracer,
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model:   model,
		enabled: apiKey != "",
	}
}

func (g *GrokClient) Enabled() bool {
	return g.enabled
}

// Complete sends the system prompt, prior turns and the user message and
// returns the model's reply text.
func (g *GrokClient) Complete(ctx context.Context, system string, history []domain.ConversationTurn, user string) (string, error) {
	ctx, span := g.tracer.Start(ctx, "grok.complete")
	defer span.End()

	if !g.enabled {
		return "", ErrUnavailable
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(system))
	for _, turn := range history {
		switch turn.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}
	messages = append(messages, openai.UserMessage(user))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(g.model),
		Messages: messages,
	})
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("grok completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("grok completion: empty response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("grok completion: empty message")
	}
	return text, nil
}
