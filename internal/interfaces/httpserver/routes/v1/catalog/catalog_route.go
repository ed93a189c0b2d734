package catalog

import (
	"github.com/gin-gonic/gin"

	"movision-server/internal/interfaces/httpserver/handlers/tmdbhandler"
)

// CatalogRoute wires the browse endpoints backed by the movie catalog.
type CatalogRoute struct {
	handler        *tmdbhandler.TMDBHandler
	generalLimiter gin.HandlerFunc
}

func NewCatalogRoute(handler *tmdbhandler.TMDBHandler, generalLimiter gin.HandlerFunc) *CatalogRoute {
	return &CatalogRoute{handler: handler, generalLimiter: generalLimiter}
}

func (catalogRoute *CatalogRoute) RegisterRouter(router gin.IRouter) {
	catalogRouter := router.Group("/tmdb")
	catalogRouter.Use(catalogRoute.generalLimiter)

	catalogRouter.GET("/trending", catalogRoute.handler.Trending)
	catalogRouter.GET("/search", catalogRoute.handler.Search)
}
