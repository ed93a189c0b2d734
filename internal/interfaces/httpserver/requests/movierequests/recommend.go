package movierequests

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"movision-server/internal/utils/apperrors"
)

// MaxMessageLength bounds the message so an abusive caller cannot push
// arbitrarily large prompts at the cost-bearing model endpoint.
const MaxMessageLength = 1000

// RecommendRequest is the parsed and validated chat recommendation input.
type RecommendRequest struct {
	// Message is trimmed; handlers never need to trim again.
	Message   string
	SessionID string
}

// ParseRecommendRequest validates the request body field by field so each
// rejection names the specific check that failed. Validation runs before
// any rate-limited or cost-bearing work.
func ParseRecommendRequest(c *gin.Context) (*RecommendRequest, error) {
	ctx := c.Request.Context()

	var body struct {
		Message   any `json:"message"`
		SessionID any `json:"sessionId"`
	}
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerRoute, apperrors.ErrorTypeValidation,
			"Request body is missing. Send JSON with Content-Type: application/json", err)
	}

	if body.Message == nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerRoute, apperrors.ErrorTypeValidation,
			`Missing required field: "message". Tell us what kind of movies you like!`, nil)
	}
	message, ok := body.Message.(string)
	if !ok {
		return nil, apperrors.NewError(ctx, apperrors.LayerRoute, apperrors.ErrorTypeValidation,
			`"message" must be a string`, nil)
	}

	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, apperrors.NewError(ctx, apperrors.LayerRoute, apperrors.ErrorTypeValidation,
			`"message" cannot be empty`, nil)
	}
	if len(trimmed) > MaxMessageLength {
		return nil, apperrors.NewError(ctx, apperrors.LayerRoute, apperrors.ErrorTypeValidation,
			fmt.Sprintf(`"message" is too long. Maximum %d characters, got %d`, MaxMessageLength, len(trimmed)), nil)
	}

	request := &RecommendRequest{Message: trimmed}

	if body.SessionID != nil {
		sessionID, ok := body.SessionID.(string)
		if !ok || strings.TrimSpace(sessionID) == "" {
			return nil, apperrors.NewError(ctx, apperrors.LayerRoute, apperrors.ErrorTypeValidation,
				`"sessionId" must be a non-empty string if provided`, nil)
		}
		request.SessionID = sessionID
	}

	return request, nil
}

// ClearHistoryRequest identifies the session to clear.
type ClearHistoryRequest struct {
	SessionID string `json:"sessionId"`
}
