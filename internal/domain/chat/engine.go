package chat

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"movision-server/internal/utils/apperrors"
)

// SystemPrompt frames every model call: feature films only, strict JSON,
// 5-6 diverse items.
const SystemPrompt = `You are a movie recommendation expert. Only recommend feature films (no TV series, no TV shows, no miniseries, no anime series). Provide movie recommendations in ONLY valid JSON format with NO markdown, preamble, or explanation. Return exactly this structure:
{
  "recommendations": [
    {
      "title": "Movie Title",
      "year": 2020,
      "genre": "Genre",
      "rating": 8.5,
      "runtime": "120 min",
      "director": "Director Name",
      "plot": "Brief plot description",
      "why": "Why this matches their preferences"
    }
  ]
}

Provide 5-6 diverse recommendations that match the user's preferences. Be specific and helpful.`

// CompletionClient is the transport the engine speaks to the model through.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}

// EngineOptions tune the model call without touching prompt semantics.
type EngineOptions struct {
	Model        string
	Temperature  float32
	SystemPrompt string
}

// Engine turns a user message plus prior history into parsed movie
// candidates and an extended history.
type Engine struct {
	client CompletionClient
	opts   EngineOptions
}

// Result is a successful recommendation turn.
type Result struct {
	Candidates     []MovieCandidate
	UpdatedHistory []Turn
}

func NewEngine(client CompletionClient, opts EngineOptions) *Engine {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = SystemPrompt
	}
	return &Engine{client: client, opts: opts}
}

// Recommend runs one conversational turn. Failures are returned before any
// history is extended, so the caller's stored session is never corrupted
// by a failed upstream call or an unparseable reply.
func (e *Engine) Recommend(ctx context.Context, userMessage string, history []Turn) (*Result, error) {
	request := openai.ChatCompletionRequest{
		Model:       e.opts.Model,
		Messages:    e.buildMessages(userMessage, history),
		Temperature: e.opts.Temperature,
	}

	response, err := e.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, apperrors.AsError(ctx, apperrors.LayerDomain, err, "chat completion failed")
	}
	if len(response.Choices) == 0 {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeUpstream, "chat completion returned no choices", nil)
	}

	assistantMessage := response.Choices[0].Message.Content
	candidates, err := ParseRecommendations(ctx, assistantMessage)
	if err != nil {
		return nil, err
	}

	updatedHistory := append(CloneHistory(history),
		Turn{Role: RoleUser, Content: userMessage},
		Turn{Role: RoleAssistant, Content: assistantMessage},
	)

	return &Result{Candidates: candidates, UpdatedHistory: updatedHistory}, nil
}

func (e *Engine) buildMessages(userMessage string, history []Turn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: e.opts.SystemPrompt,
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})
	return messages
}

var (
	fenceOpenPattern  = regexp.MustCompile("```json\n?")
	fenceClosePattern = regexp.MustCompile("```\n?")
)

// StripFences removes markdown code fence markers the model sometimes
// wraps its JSON in. Stripping is idempotent and lossless for the payload.
func StripFences(text string) string {
	cleaned := fenceOpenPattern.ReplaceAllString(text, "")
	cleaned = fenceClosePattern.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ParseRecommendations parses the model reply into candidates. A reply
// that is not valid JSON, or that lacks a recommendations array, is a
// parse failure: the same input would likely reproduce the same broken
// output, so callers treat it as terminal rather than retrying.
func ParseRecommendations(ctx context.Context, raw string) ([]MovieCandidate, error) {
	cleaned := StripFences(raw)

	var payload struct {
		Recommendations []MovieCandidate `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeParse, "model reply is not valid JSON", err)
	}
	if payload.Recommendations == nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeParse, "model reply lacks a recommendations array", nil)
	}
	return payload.Recommendations, nil
}
