package userlibrary

import (
	"github.com/gin-gonic/gin"

	"movision-server/internal/interfaces/httpserver/handlers/libraryhandler"
)

// LibraryRoute wires the authenticated watchlist and watched endpoints.
type LibraryRoute struct {
	handler        *libraryhandler.LibraryHandler
	auth           gin.HandlerFunc
	generalLimiter gin.HandlerFunc
}

func NewLibraryRoute(handler *libraryhandler.LibraryHandler, auth, generalLimiter gin.HandlerFunc) *LibraryRoute {
	return &LibraryRoute{
		handler:        handler,
		auth:           auth,
		generalLimiter: generalLimiter,
	}
}

func (libraryRoute *LibraryRoute) RegisterRouter(router gin.IRouter) {
	libraryRouter := router.Group("/library")
	libraryRouter.Use(libraryRoute.generalLimiter, libraryRoute.auth)

	libraryRouter.GET("/watchlist", libraryRoute.handler.GetWatchlist)
	libraryRouter.POST("/watchlist", libraryRoute.handler.AddToWatchlist)
	libraryRouter.DELETE("/watchlist/:tmdbId", libraryRoute.handler.RemoveFromWatchlist)
	libraryRouter.GET("/watchlist/check/:tmdbId", libraryRoute.handler.CheckWatchlist)

	libraryRouter.GET("/watched", libraryRoute.handler.GetWatched)
	libraryRouter.POST("/watched", libraryRoute.handler.AddToWatched)
	libraryRouter.DELETE("/watched/:tmdbId", libraryRoute.handler.RemoveFromWatched)
	libraryRouter.GET("/watched/stats", libraryRoute.handler.WatchedStats)
}
