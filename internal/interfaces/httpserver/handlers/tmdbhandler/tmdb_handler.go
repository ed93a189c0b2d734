package tmdbhandler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"movision-server/internal/infrastructure/tmdb"
	"movision-server/internal/interfaces/httpserver/responses"
	"movision-server/internal/interfaces/httpserver/responses/movieresponses"
	"movision-server/internal/utils/apperrors"
)

// TMDBHandler serves catalog listings. Provider outages degrade to an
// empty first page so the browsing UI stays up while the chat flow,
// which has no sensible fallback, keeps failing loudly.
type TMDBHandler struct {
	client *tmdb.Client
	logger zerolog.Logger
}

func NewTMDBHandler(client *tmdb.Client, logger zerolog.Logger) *TMDBHandler {
	return &TMDBHandler{client: client, logger: logger}
}

// Trending returns one page of this week's trending movies.
func (h *TMDBHandler) Trending(reqCtx *gin.Context) {
	page := pageParam(reqCtx)

	result, err := h.client.Trending(reqCtx.Request.Context(), page)
	if err != nil {
		h.logger.Warn().Err(err).Int("page", page).Msg("trending lookup failed, serving empty page")
		reqCtx.JSON(http.StatusOK, movieresponses.EmptyTrending())
		return
	}
	reqCtx.JSON(http.StatusOK, movieresponses.NewTrendingResponse(result))
}

// Search returns one page of title search results. The query is
// required; a blank query is a caller error, not a provider outage.
func (h *TMDBHandler) Search(reqCtx *gin.Context) {
	query := strings.TrimSpace(reqCtx.Query("q"))
	if query == "" {
		responses.HandleNewError(reqCtx, apperrors.ErrorTypeValidation, `query parameter "q" is required`)
		return
	}
	page := pageParam(reqCtx)

	result, err := h.client.Search(reqCtx.Request.Context(), query, page)
	if err != nil {
		h.logger.Warn().Err(err).Str("query", query).Msg("search lookup failed, serving empty page")
		reqCtx.JSON(http.StatusOK, movieresponses.EmptySearch())
		return
	}
	reqCtx.JSON(http.StatusOK, movieresponses.NewSearchResponse(result))
}

func pageParam(reqCtx *gin.Context) int {
	page, err := strconv.Atoi(reqCtx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
