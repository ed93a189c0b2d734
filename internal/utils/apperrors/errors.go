package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrorType categorizes an error for HTTP mapping and retry policy.
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeRateLimited  ErrorType = "RATE_LIMITED"
	ErrorTypeUpstream     ErrorType = "UPSTREAM"
	ErrorTypeParse        ErrorType = "PARSE"
	ErrorTypeDatabase     ErrorType = "DATABASE"
	ErrorTypeInternal     ErrorType = "INTERNAL"
)

// Layer names the application layer where the error originated.
type Layer string

const (
	LayerRepository     Layer = "repository"
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerRoute          Layer = "route"
	LayerInfrastructure Layer = "infrastructure"
)

// AppError carries a typed error with request context.
type AppError struct {
	Type      ErrorType
	Layer     Layer
	Message   string
	Err       error
	RequestID string
	Timestamp time.Time

	// RetryAfter is the suggested back-off in seconds. Only meaningful
	// for ErrorTypeRateLimited.
	RetryAfter int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", e.Layer, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Layer, e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value("requestID").(string); ok {
		return requestID
	}
	return ""
}

// NewError creates a typed AppError.
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:      errorType,
		Layer:     layer,
		Message:   message,
		Err:       err,
		RequestID: requestIDFromContext(ctx),
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitError creates a RATE_LIMITED error carrying a retry-after hint.
func NewRateLimitError(ctx context.Context, message string, retryAfter int) *AppError {
	appErr := NewError(ctx, LayerRoute, ErrorTypeRateLimited, message, nil)
	appErr.RetryAfter = retryAfter
	return appErr
}

// AsError wraps err with layer context, preserving the type of an existing
// AppError in the chain.
func AsError(ctx context.Context, layer Layer, err error, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		wrapped := NewError(ctx, layer, appErr.Type, fmt.Sprintf("%s: %s", message, appErr.Message), appErr)
		wrapped.RetryAfter = appErr.RetryAfter
		return wrapped
	}
	return NewError(ctx, layer, ErrorTypeInternal, message, err)
}

// IsErrorType reports whether err is an AppError of the given type.
func IsErrorType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// ErrorTypeToHTTPStatus maps error types to HTTP status codes. Upstream and
// parse failures on the recommendation path surface as plain 500s.
func ErrorTypeToHTTPStatus(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	case ErrorTypeUpstream, ErrorTypeParse, ErrorTypeDatabase, ErrorTypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// LogError logs an AppError with its structure flattened into fields.
func LogError(logger zerolog.Logger, err *AppError) {
	if err == nil {
		return
	}

	event := logger.Error().
		Str("error_type", string(err.Type)).
		Str("layer", string(err.Layer)).
		Time("timestamp_utc", err.Timestamp)

	if err.RequestID != "" {
		event = event.Str("request_id", err.RequestID)
	}
	if err.Err != nil {
		event = event.Err(err.Err)
	}
	event.Msg(err.Message)
}
