package moviehandler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"movision-server/internal/domain/chat"
	"movision-server/internal/domain/movie"
	"movision-server/internal/domain/session"
	"movision-server/internal/infrastructure/metrics"
	"movision-server/internal/interfaces/httpserver/requests/movierequests"
	"movision-server/internal/interfaces/httpserver/responses"
	"movision-server/internal/interfaces/httpserver/responses/movieresponses"
	"movision-server/internal/utils/apperrors"
)

// MovieHandler orchestrates the conversational recommendation flow:
// session lookup, model call, history update, metadata enrichment.
type MovieHandler struct {
	engine   *chat.Engine
	sessions *session.Store
	enricher *movie.Enricher
	logger   zerolog.Logger
}

func NewMovieHandler(engine *chat.Engine, sessions *session.Store, enricher *movie.Enricher, logger zerolog.Logger) *MovieHandler {
	return &MovieHandler{
		engine:   engine,
		sessions: sessions,
		enricher: enricher,
		logger:   logger,
	}
}

// GetRecommendations runs one recommendation turn. The stored session is
// only updated after the model reply parses, so a failed turn leaves the
// conversation exactly where it was.
func (h *MovieHandler) GetRecommendations(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	request, err := movierequests.ParseRecommendRequest(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "invalid request")
		return
	}

	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// A missing or expired session falls back to an empty history; the
	// turn proceeds as the start of a fresh conversation.
	history, _ := h.sessions.Get(sessionID)

	result, err := h.engine.Recommend(ctx, request.Message, history)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("recommendation turn failed")
		responses.HandleError(reqCtx, err, "failed to get recommendations")
		return
	}

	h.sessions.Update(sessionID, result.UpdatedHistory)
	metrics.RecommendationTurnsTotal.Inc()
	metrics.ActiveSessions.Set(float64(h.sessions.Count()))

	enriched := h.enricher.Enrich(ctx, result.Candidates)

	reqCtx.JSON(http.StatusOK, movieresponses.RecommendationResponse{
		SessionID:       sessionID,
		Recommendations: enriched,
		Message:         "Here are your personalized recommendations!",
	})
}

// ClearHistory wipes a session's conversation. Clearing an unknown or
// already-expired session succeeds; the outcome is the same either way.
func (h *MovieHandler) ClearHistory(reqCtx *gin.Context) {
	var request movierequests.ClearHistoryRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil || request.SessionID == "" {
		responses.HandleNewError(reqCtx, apperrors.ErrorTypeValidation, "sessionId is required to clear history")
		return
	}

	h.sessions.Clear(request.SessionID)
	metrics.ActiveSessions.Set(float64(h.sessions.Count()))

	reqCtx.JSON(http.StatusOK, movieresponses.ClearHistoryResponse{
		Message:   "Conversation history cleared",
		SessionID: request.SessionID,
	})
}

// Health reports liveness and current session pressure.
func (h *MovieHandler) Health(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, movieresponses.HealthResponse{
		Status:         "ok",
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		ActiveSessions: h.sessions.Count(),
	})
}
