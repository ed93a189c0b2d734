package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"movision-server/internal/config"
	"movision-server/internal/utils/apperrors"
)

// ErrorResponse is the JSON envelope for every error path. Detail carries
// the wrapped cause and is only populated outside production.
type ErrorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// HandleError maps a domain error to its HTTP status and writes the
// envelope.
func HandleError(reqCtx *gin.Context, err error, fallbackMessage string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		if message == "" {
			message = fallbackMessage
		}

		response := ErrorResponse{
			Error:      message,
			RetryAfter: appErr.RetryAfter,
			RequestID:  appErr.RequestID,
		}
		if config.IsDev() && appErr.Err != nil {
			response.Detail = appErr.Err.Error()
		}
		reqCtx.AbortWithStatusJSON(apperrors.ErrorTypeToHTTPStatus(appErr.Type), response)
		return
	}

	response := ErrorResponse{Error: fallbackMessage}
	if config.IsDev() && err != nil {
		response.Detail = err.Error()
	}
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, response)
}

// HandleNewError creates a typed error at the route layer and handles it.
func HandleNewError(reqCtx *gin.Context, errorType apperrors.ErrorType, message string) {
	err := apperrors.NewError(reqCtx.Request.Context(), apperrors.LayerRoute, errorType, message, nil)
	HandleError(reqCtx, err, message)
}
