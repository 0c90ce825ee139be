package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobprep-backend/internal/shared/config"
	"jobprep-backend/internal/shared/metrics"
	"jobprep-backend/internal/shared/server/middleware"
	"jobprep-backend/internal/shared/server/respond"
)

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps lists the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config           config.Config
	ResumeHandler    RouteRegistrar
	InterviewHandler RouteRegistrar
	DashboardHandler RouteRegistrar
	ExportHandler    RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Domain routes are served both at the root, where the browser client calls them,
// and under /api/v1.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsDevLike() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	health := func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	}
	r.GET("/health", health)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", health)

	for _, h := range []RouteRegistrar{
		deps.ResumeHandler,
		deps.InterviewHandler,
		deps.DashboardHandler,
		deps.ExportHandler,
	} {
		if h == nil {
			continue
		}
		h.RegisterRoutes(&r.RouterGroup)
		h.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
