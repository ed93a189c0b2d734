package movies

import (
	"github.com/gin-gonic/gin"

	"movision-server/internal/interfaces/httpserver/handlers/moviehandler"
)

// MoviesRoute wires the conversational recommendation endpoints. The
// recommend endpoint sits behind both the general and the AI limiter;
// clearing history and health checks only behind the general one
// applied at the group level.
type MoviesRoute struct {
	handler        *moviehandler.MovieHandler
	generalLimiter gin.HandlerFunc
	aiLimiter      gin.HandlerFunc
}

func NewMoviesRoute(handler *moviehandler.MovieHandler, generalLimiter, aiLimiter gin.HandlerFunc) *MoviesRoute {
	return &MoviesRoute{
		handler:        handler,
		generalLimiter: generalLimiter,
		aiLimiter:      aiLimiter,
	}
}

func (moviesRoute *MoviesRoute) RegisterRouter(router gin.IRouter) {
	moviesRouter := router.Group("/movies")
	moviesRouter.Use(moviesRoute.generalLimiter)

	moviesRouter.POST("/recommend", moviesRoute.aiLimiter, moviesRoute.handler.GetRecommendations)
	moviesRouter.POST("/clear", moviesRoute.handler.ClearHistory)
	moviesRouter.GET("/health", moviesRoute.handler.Health)
}
