package chat

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"movision-server/internal/utils/apperrors"
)

const validReply = `{
  "recommendations": [
    {"title": "Heat", "year": 1995, "genre": "Crime", "rating": 8.3, "runtime": "170 min", "director": "Michael Mann", "plot": "A crew of career thieves.", "why": "Classic heist craftsmanship."},
    {"title": "Inside Man", "year": 2006, "genre": "Thriller", "why": "A heist told in reverse."}
  ]
}`

type fakeClient struct {
	reply    string
	err      error
	requests []openai.ChatCompletionRequest
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, request)
	if f.err != nil {
		return nil, f.err
	}
	return &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.reply}},
		},
	}, nil
}

func TestRecommendParsesReply(t *testing.T) {
	client := &fakeClient{reply: validReply}
	engine := NewEngine(client, EngineOptions{Model: "test-model"})

	result, err := engine.Recommend(context.Background(), "heist movies", nil)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(result.Candidates))
	}
	if result.Candidates[0].Title != "Heat" {
		t.Fatalf("first title = %q, want Heat", result.Candidates[0].Title)
	}
}

func TestRecommendFencedAndBareRepliesAreEquivalent(t *testing.T) {
	bare := &fakeClient{reply: validReply}
	fenced := &fakeClient{reply: "```json\n" + validReply + "\n```"}

	bareResult, err := NewEngine(bare, EngineOptions{}).Recommend(context.Background(), "heists", nil)
	if err != nil {
		t.Fatalf("bare reply: %v", err)
	}
	fencedResult, err := NewEngine(fenced, EngineOptions{}).Recommend(context.Background(), "heists", nil)
	if err != nil {
		t.Fatalf("fenced reply: %v", err)
	}
	if len(bareResult.Candidates) != len(fencedResult.Candidates) {
		t.Fatalf("candidate counts differ: %d vs %d", len(bareResult.Candidates), len(fencedResult.Candidates))
	}
	for i := range bareResult.Candidates {
		if bareResult.Candidates[i].Title != fencedResult.Candidates[i].Title {
			t.Fatalf("candidate %d differs: %q vs %q", i, bareResult.Candidates[i].Title, fencedResult.Candidates[i].Title)
		}
	}
}

func TestRecommendBuildsMessagesFromHistory(t *testing.T) {
	client := &fakeClient{reply: validReply}
	engine := NewEngine(client, EngineOptions{})

	history := []Turn{
		{Role: RoleUser, Content: "first ask"},
		{Role: RoleAssistant, Content: validReply},
	}
	if _, err := engine.Recommend(context.Background(), "more like those", history); err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(client.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(client.requests))
	}
	messages := client.requests[0].Messages
	if len(messages) != 4 {
		t.Fatalf("messages = %d, want system + 2 history + user", len(messages))
	}
	if messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("first message role = %q, want system", messages[0].Role)
	}
	if messages[1].Content != "first ask" {
		t.Fatalf("history not forwarded verbatim: %q", messages[1].Content)
	}
	if messages[3].Content != "more like those" {
		t.Fatalf("last message = %q, want the new user message", messages[3].Content)
	}
}

func TestRecommendExtendsHistoryVerbatim(t *testing.T) {
	client := &fakeClient{reply: validReply}
	engine := NewEngine(client, EngineOptions{})

	history := []Turn{{Role: RoleUser, Content: "old"}, {Role: RoleAssistant, Content: "reply"}}
	result, err := engine.Recommend(context.Background(), "  spaced message  ", history)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(result.UpdatedHistory) != 4 {
		t.Fatalf("updated history length = %d, want 4", len(result.UpdatedHistory))
	}
	if got := result.UpdatedHistory[2]; got.Role != RoleUser || got.Content != "  spaced message  " {
		t.Fatalf("user turn = %+v, want verbatim message", got)
	}
	if got := result.UpdatedHistory[3]; got.Role != RoleAssistant || got.Content != validReply {
		t.Fatalf("assistant turn = %+v, want raw reply", got)
	}
	if len(history) != 2 {
		t.Fatal("input history was mutated")
	}
}

func TestRecommendUpstreamFailure(t *testing.T) {
	upstreamErr := apperrors.NewError(context.Background(), apperrors.LayerInfrastructure,
		apperrors.ErrorTypeUpstream, "chat completion request failed", errors.New("connection refused"))
	client := &fakeClient{err: upstreamErr}
	engine := NewEngine(client, EngineOptions{})

	_, err := engine.Recommend(context.Background(), "anything", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsErrorType(err, apperrors.ErrorTypeUpstream) {
		t.Fatalf("error type = %v, want upstream", err)
	}
}

func TestRecommendEmptyChoices(t *testing.T) {
	client := &emptyChoicesClient{}
	engine := NewEngine(client, EngineOptions{})

	_, err := engine.Recommend(context.Background(), "anything", nil)
	if !apperrors.IsErrorType(err, apperrors.ErrorTypeUpstream) {
		t.Fatalf("error type = %v, want upstream", err)
	}
}

type emptyChoicesClient struct{}

func (emptyChoicesClient) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	return &openai.ChatCompletionResponse{}, nil
}

func TestRecommendUnparseableReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"prose", "Sure! Here are some great heist movies you might enjoy."},
		{"truncated json", `{"recommendations": [{"title": "Heat"`},
		{"missing array", `{"movies": []}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := NewEngine(&fakeClient{reply: tc.reply}, EngineOptions{})
			_, err := engine.Recommend(context.Background(), "heists", nil)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !apperrors.IsErrorType(err, apperrors.ErrorTypeParse) {
				t.Fatalf("error type = %v, want parse", err)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without newline", "```json{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripFences(tc.input); got != tc.want {
				t.Fatalf("StripFences(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
