package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// DefaultGeminiModel is used when no Gemini model name is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiClient completes conversations with Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger logging.Logger
}

// NewGeminiClient opens a Gemini client.  OpenAI model names are replaced
// with DefaultGeminiModel.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeValidation, "gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAssistantUnavailable, "failed to create gemini client")
	}
	if model == "" || strings.HasPrefix(model, "gpt") {
		model = DefaultGeminiModel
	}
	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

// Complete maps the conversation onto a Gemini chat session: system turns
// become the system instruction, earlier turns the history, and the final
// user turn is sent.
func (g *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	system, history, last := splitForChat(req.Messages)
	if last == "" {
		return "", errors.New(errors.ErrCodeAssistantInputInvalid, "conversation has no user message")
	}

	model := g.client.GenerativeModel(g.model)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAssistantUnavailable, "gemini request failed")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyCompletion
	}
	return sb.String(), nil
}

func splitForChat(turns []Turn) (system string, history []*genai.Content, last string) {
	var sys []string
	end := len(turns)
	if end > 0 && turns[end-1].Role == RoleUser {
		last = turns[end-1].Content
		end--
	}
	for _, t := range turns[:end] {
		switch t.Role {
		case RoleSystem:
			sys = append(sys, t.Content)
		case RoleUser:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(t.Content)}})
		case RoleAssistant:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(t.Content)}})
		}
	}
	return strings.Join(sys, "\n\n"), history, last
}

func (g *GeminiClient) Provider() Provider { return ProviderGemini }

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

//Personal.AI order the ending
