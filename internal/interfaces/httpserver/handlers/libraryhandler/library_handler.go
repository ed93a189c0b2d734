package libraryhandler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"movision-server/internal/domain/library"
	"movision-server/internal/interfaces/httpserver/middlewares"
	"movision-server/internal/interfaces/httpserver/requests/libraryrequests"
	"movision-server/internal/interfaces/httpserver/responses"
	"movision-server/internal/interfaces/httpserver/responses/libraryresponses"
	"movision-server/internal/utils/apperrors"
)

// LibraryHandler exposes a user's watchlist and watched list. Every route
// here sits behind the auth middleware, so a missing user id means the
// middleware was bypassed and is treated as unauthorized.
type LibraryHandler struct {
	service *library.Service
	logger  zerolog.Logger
}

func NewLibraryHandler(service *library.Service, logger zerolog.Logger) *LibraryHandler {
	return &LibraryHandler{service: service, logger: logger}
}

func (h *LibraryHandler) AddToWatchlist(reqCtx *gin.Context) {
	h.addItem(reqCtx, h.service.AddToWatchlist, "Added to watchlist")
}

func (h *LibraryHandler) AddToWatched(reqCtx *gin.Context) {
	h.addItem(reqCtx, h.service.AddToWatched, "Added to watched list")
}

func (h *LibraryHandler) RemoveFromWatchlist(reqCtx *gin.Context) {
	h.removeItem(reqCtx, h.service.RemoveFromWatchlist, "Removed from watchlist")
}

func (h *LibraryHandler) RemoveFromWatched(reqCtx *gin.Context) {
	h.removeItem(reqCtx, h.service.RemoveFromWatched, "Removed from watched list")
}

func (h *LibraryHandler) GetWatchlist(reqCtx *gin.Context) {
	h.listItems(reqCtx, h.service.Watchlist)
}

func (h *LibraryHandler) GetWatched(reqCtx *gin.Context) {
	h.listItems(reqCtx, h.service.Watched)
}

// CheckWatchlist answers whether one movie is saved, for the detail view
// toggle.
func (h *LibraryHandler) CheckWatchlist(reqCtx *gin.Context) {
	userID, ok := h.userID(reqCtx)
	if !ok {
		return
	}
	tmdbID, ok := h.tmdbIDParam(reqCtx)
	if !ok {
		return
	}

	exists, err := h.service.InWatchlist(reqCtx.Request.Context(), userID, tmdbID)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to check watchlist")
		return
	}
	reqCtx.JSON(http.StatusOK, libraryresponses.CheckResponse{TMDBID: tmdbID, InWatchlist: exists})
}

// WatchedStats summarizes the watched list for the profile page.
func (h *LibraryHandler) WatchedStats(reqCtx *gin.Context) {
	userID, ok := h.userID(reqCtx)
	if !ok {
		return
	}

	stats, err := h.service.WatchedStats(reqCtx.Request.Context(), userID)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to compute stats")
		return
	}
	reqCtx.JSON(http.StatusOK, libraryresponses.NewStatsResponse(stats))
}

func (h *LibraryHandler) addItem(reqCtx *gin.Context, add func(ctx context.Context, item library.Item) error, message string) {
	userID, ok := h.userID(reqCtx)
	if !ok {
		return
	}

	var request libraryrequests.AddItemRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		responses.HandleNewError(reqCtx, apperrors.ErrorTypeValidation, "tmdbId and title are required")
		return
	}

	item := library.Item{
		UserID:  userID,
		TMDBID:  request.TMDBID,
		Title:   request.Title,
		Poster:  request.Poster,
		Genre:   request.Genre,
		Rating:  request.Rating,
		AddedAt: time.Now().UTC(),
	}
	if err := add(reqCtx.Request.Context(), item); err != nil {
		responses.HandleError(reqCtx, err, "failed to save movie")
		return
	}
	reqCtx.JSON(http.StatusOK, libraryresponses.SavedResponse{Message: message, TMDBID: request.TMDBID})
}

func (h *LibraryHandler) removeItem(reqCtx *gin.Context, remove func(ctx context.Context, userID string, tmdbID int) error, message string) {
	userID, ok := h.userID(reqCtx)
	if !ok {
		return
	}
	tmdbID, ok := h.tmdbIDParam(reqCtx)
	if !ok {
		return
	}

	if err := remove(reqCtx.Request.Context(), userID, tmdbID); err != nil {
		responses.HandleError(reqCtx, err, "failed to remove movie")
		return
	}
	reqCtx.JSON(http.StatusOK, libraryresponses.SavedResponse{Message: message, TMDBID: tmdbID})
}

func (h *LibraryHandler) listItems(reqCtx *gin.Context, list func(ctx context.Context, userID string) ([]library.Item, error)) {
	userID, ok := h.userID(reqCtx)
	if !ok {
		return
	}

	items, err := list(reqCtx.Request.Context(), userID)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to list movies")
		return
	}
	reqCtx.JSON(http.StatusOK, libraryresponses.NewListResponse(items))
}

func (h *LibraryHandler) userID(reqCtx *gin.Context) (string, bool) {
	userID := middlewares.UserIDFromContext(reqCtx)
	if userID == "" {
		responses.HandleNewError(reqCtx, apperrors.ErrorTypeUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

func (h *LibraryHandler) tmdbIDParam(reqCtx *gin.Context) (int, bool) {
	tmdbID, err := strconv.Atoi(reqCtx.Param("tmdbId"))
	if err != nil || tmdbID <= 0 {
		responses.HandleNewError(reqCtx, apperrors.ErrorTypeValidation, "tmdbId must be a positive integer")
		return 0, false
	}
	return tmdbID, true
}
