package moviehandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"movision-server/internal/domain/chat"
	"movision-server/internal/domain/movie"
	"movision-server/internal/domain/session"
)

const modelReply = `{
  "recommendations": [
    {"title": "Heat", "year": 1995, "genre": "Crime", "why": "Heist craftsmanship."},
    {"title": "Inside Man", "year": 2006, "genre": "Thriller", "why": "A clever heist."},
    {"title": "Ronin", "year": 1998, "genre": "Action", "why": "Car chases and a MacGuffin."},
    {"title": "The Score", "year": 2001, "genre": "Crime", "why": "Old-school safecracking."},
    {"title": "Sexy Beast", "year": 2000, "genre": "Crime", "why": "One last job."}
  ]
}`

type scriptedClient struct {
	reply    string
	requests []openai.ChatCompletionRequest
}

func (s *scriptedClient) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	s.requests = append(s.requests, request)
	return &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: s.reply}},
		},
	}, nil
}

type noopSearcher struct{}

func (noopSearcher) SearchMovie(context.Context, string) (*movie.Metadata, error) {
	return nil, nil
}

type recommendationBody struct {
	SessionID       string `json:"sessionId"`
	Recommendations []struct {
		Title string `json:"title"`
		Why   string `json:"why"`
	} `json:"recommendations"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newTestRouter(client *scriptedClient, sessions *session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := chat.NewEngine(client, chat.EngineOptions{Model: "test-model"})
	enricher := movie.NewEnricher(noopSearcher{}, 2, zerolog.Nop())
	handler := NewMovieHandler(engine, sessions, enricher, zerolog.Nop())

	router := gin.New()
	router.POST("/recommend", handler.GetRecommendations)
	router.POST("/clear", handler.ClearHistory)
	router.GET("/health", handler.Health)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestGetRecommendationsNewSession(t *testing.T) {
	client := &scriptedClient{reply: modelReply}
	sessions := session.NewStore(30 * time.Minute)
	router := newTestRouter(client, sessions)

	recorder := postJSON(router, "/recommend", `{"message": "something with heists"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var body recommendationBody
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.SessionID == "" {
		t.Fatal("expected a generated sessionId")
	}
	if len(body.Recommendations) != 5 {
		t.Fatalf("recommendations = %d, want 5", len(body.Recommendations))
	}
	for i, rec := range body.Recommendations {
		if rec.Title == "" || rec.Why == "" {
			t.Fatalf("recommendation %d missing title or why: %+v", i, rec)
		}
	}
	if sessions.Count() != 1 {
		t.Fatalf("session count = %d, want 1", sessions.Count())
	}
}

func TestGetRecommendationsFollowUpCarriesHistory(t *testing.T) {
	client := &scriptedClient{reply: modelReply}
	sessions := session.NewStore(30 * time.Minute)
	router := newTestRouter(client, sessions)

	first := postJSON(router, "/recommend", `{"message": "something with heists"}`)
	var firstBody recommendationBody
	if err := json.Unmarshal(first.Body.Bytes(), &firstBody); err != nil {
		t.Fatalf("decode first response: %v", err)
	}

	second := postJSON(router, "/recommend",
		`{"message": "lighter in tone please", "sessionId": "`+firstBody.SessionID+`"}`)
	if second.Code != http.StatusOK {
		t.Fatalf("follow-up status = %d", second.Code)
	}

	var secondBody recommendationBody
	if err := json.Unmarshal(second.Body.Bytes(), &secondBody); err != nil {
		t.Fatalf("decode second response: %v", err)
	}
	if secondBody.SessionID != firstBody.SessionID {
		t.Fatalf("sessionId changed across turns: %q vs %q", secondBody.SessionID, firstBody.SessionID)
	}

	if len(client.requests) != 2 {
		t.Fatalf("model calls = %d, want 2", len(client.requests))
	}
	messages := client.requests[1].Messages
	// System prompt, first user turn, first assistant reply, new user turn.
	if len(messages) != 4 {
		t.Fatalf("follow-up messages = %d, want 4", len(messages))
	}
	if messages[1].Content != "something with heists" {
		t.Fatalf("first exchange not replayed: %q", messages[1].Content)
	}
	if messages[2].Content != modelReply {
		t.Fatal("assistant reply not replayed verbatim")
	}
	if messages[3].Content != "lighter in tone please" {
		t.Fatalf("new message = %q", messages[3].Content)
	}
}

func TestGetRecommendationsValidationRejection(t *testing.T) {
	router := newTestRouter(&scriptedClient{reply: modelReply}, session.NewStore(30*time.Minute))

	recorder := postJSON(router, "/recommend", `{"message": ""}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}

	var body recommendationBody
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error != `"message" cannot be empty` {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestGetRecommendationsFailedTurnKeepsHistory(t *testing.T) {
	client := &scriptedClient{reply: modelReply}
	sessions := session.NewStore(30 * time.Minute)
	router := newTestRouter(client, sessions)

	first := postJSON(router, "/recommend", `{"message": "heists"}`)
	var firstBody recommendationBody
	if err := json.Unmarshal(first.Body.Bytes(), &firstBody); err != nil {
		t.Fatalf("decode first response: %v", err)
	}

	client.reply = "Sorry, I can't help with that."
	second := postJSON(router, "/recommend",
		`{"message": "more", "sessionId": "`+firstBody.SessionID+`"}`)
	if second.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for unparseable reply", second.Code)
	}

	history, ok := sessions.Get(firstBody.SessionID)
	if !ok {
		t.Fatal("session lost after failed turn")
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2 (failed turn must not extend history)", len(history))
	}
}

func TestClearHistory(t *testing.T) {
	client := &scriptedClient{reply: modelReply}
	sessions := session.NewStore(30 * time.Minute)
	router := newTestRouter(client, sessions)

	first := postJSON(router, "/recommend", `{"message": "heists"}`)
	var firstBody recommendationBody
	if err := json.Unmarshal(first.Body.Bytes(), &firstBody); err != nil {
		t.Fatalf("decode first response: %v", err)
	}

	recorder := postJSON(router, "/clear", `{"sessionId": "`+firstBody.SessionID+`"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("clear status = %d", recorder.Code)
	}
	if _, ok := sessions.Get(firstBody.SessionID); ok {
		t.Fatal("session should be gone after clear")
	}
}

func TestClearHistoryRequiresSessionID(t *testing.T) {
	router := newTestRouter(&scriptedClient{reply: modelReply}, session.NewStore(30*time.Minute))

	recorder := postJSON(router, "/clear", `{}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestHealth(t *testing.T) {
	sessions := session.NewStore(30 * time.Minute)
	sessions.Update("s1", nil)
	router := newTestRouter(&scriptedClient{reply: modelReply}, sessions)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	var body struct {
		Status         string `json:"status"`
		Timestamp      string `json:"timestamp"`
		ActiveSessions int    `json:"activeSessions"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("status = %q, want ok", body.Status)
	}
	if body.ActiveSessions != 1 {
		t.Fatalf("activeSessions = %d, want 1", body.ActiveSessions)
	}
	if _, err := time.Parse(time.RFC3339, body.Timestamp); err != nil {
		t.Fatalf("timestamp %q is not RFC3339: %v", body.Timestamp, err)
	}
}
