package sharehandler

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"movision-server/internal/domain/movie"
	"movision-server/internal/infrastructure/mailer"
	"movision-server/internal/interfaces/httpserver/requests/sharerequests"
	"movision-server/internal/interfaces/httpserver/responses"
	"movision-server/internal/interfaces/httpserver/responses/shareresponses"
	"movision-server/internal/utils/apperrors"
)

const defaultSubject = "Movie recommendations picked for you"

// ShareHandler emails a set of recommendations to a friend.
type ShareHandler struct {
	mailer *mailer.Client
	logger zerolog.Logger
}

func NewShareHandler(mailerClient *mailer.Client, logger zerolog.Logger) *ShareHandler {
	return &ShareHandler{mailer: mailerClient, logger: logger}
}

// Share renders the movie list as HTML and sends it to the recipient.
func (h *ShareHandler) Share(reqCtx *gin.Context) {
	var request sharerequests.ShareRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		responses.HandleNewError(reqCtx, apperrors.ErrorTypeValidation, "email and a non-empty movies list are required")
		return
	}

	subject := strings.TrimSpace(request.Subject)
	if subject == "" {
		subject = defaultSubject
	}

	recipient := mailer.Recipient{Email: request.Email, Name: request.Name}
	if err := h.mailer.Send(reqCtx.Request.Context(), recipient, subject, renderMovies(request.Movies)); err != nil {
		h.logger.Error().Err(err).Str("email", request.Email).Msg("share email failed")
		responses.HandleError(reqCtx, err, "failed to send recommendations")
		return
	}

	reqCtx.JSON(http.StatusOK, shareresponses.ShareResponse{
		Message: "Recommendations sent",
		Email:   request.Email,
	})
}

func renderMovies(movies []movie.Enriched) string {
	var builder strings.Builder
	builder.WriteString("<h2>Movie recommendations for you</h2><ul>")
	for _, item := range movies {
		builder.WriteString("<li><strong>")
		builder.WriteString(html.EscapeString(item.Title))
		builder.WriteString("</strong>")
		if year := yearLabel(item.Year); year != "" {
			builder.WriteString(fmt.Sprintf(" (%s)", html.EscapeString(year)))
		}
		if item.Why != "" {
			builder.WriteString("<br>")
			builder.WriteString(html.EscapeString(item.Why))
		}
		builder.WriteString("</li>")
	}
	builder.WriteString("</ul>")
	return builder.String()
}

// yearLabel formats the loosely-typed year the model returns (number or
// string) for display.
func yearLabel(year any) string {
	switch value := year.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return fmt.Sprintf("%.0f", value)
	default:
		return fmt.Sprint(value)
	}
}
