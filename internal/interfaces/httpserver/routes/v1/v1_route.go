package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movision-server/internal/config"
	"movision-server/internal/interfaces/httpserver/routes/v1/catalog"
	"movision-server/internal/interfaces/httpserver/routes/v1/movies"
	"movision-server/internal/interfaces/httpserver/routes/v1/share"
	"movision-server/internal/interfaces/httpserver/routes/v1/userlibrary"
)

// V1Route aggregates the versioned API surface. The library and share
// routes are optional: they are only mounted when their backing services
// (database, mailer) are configured.
type V1Route struct {
	movies  *movies.MoviesRoute
	catalog *catalog.CatalogRoute
	library *userlibrary.LibraryRoute
	share   *share.ShareRoute
}

func NewV1Route(
	moviesRoute *movies.MoviesRoute,
	catalogRoute *catalog.CatalogRoute,
	libraryRoute *userlibrary.LibraryRoute,
	shareRoute *share.ShareRoute,
) *V1Route {
	return &V1Route{
		movies:  moviesRoute,
		catalog: catalogRoute,
		library: libraryRoute,
		share:   shareRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	v1Route.movies.RegisterRouter(v1Router)
	v1Route.catalog.RegisterRouter(v1Router)
	if v1Route.library != nil {
		v1Route.library.RegisterRouter(v1Router)
	}
	if v1Route.share != nil {
		v1Route.share.RegisterRouter(v1Router)
	}
}

func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": config.Version})
}
