package share

import (
	"github.com/gin-gonic/gin"

	"movision-server/internal/interfaces/httpserver/handlers/sharehandler"
)

// ShareRoute wires the share-by-email endpoint.
type ShareRoute struct {
	handler        *sharehandler.ShareHandler
	generalLimiter gin.HandlerFunc
}

func NewShareRoute(handler *sharehandler.ShareHandler, generalLimiter gin.HandlerFunc) *ShareRoute {
	return &ShareRoute{handler: handler, generalLimiter: generalLimiter}
}

func (shareRoute *ShareRoute) RegisterRouter(router gin.IRouter) {
	shareRouter := router.Group("/share")
	shareRouter.Use(shareRoute.generalLimiter)

	shareRouter.POST("", shareRoute.handler.Share)
}
