package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/foodshare/internal/container"
	handlers "github.com/oksasatya/foodshare/internal/interface/http"
	"github.com/oksasatya/foodshare/internal/interface/middleware"
)

type DebugModule struct {
	Health     *handlers.HealthHandler
	ExposeVars bool
}

func NewDebugModule(h *handlers.HealthHandler, exposeVars bool) *DebugModule {
	return &DebugModule{Health: h, ExposeVars: exposeVars}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// in-cluster scrapers are not limited
	rl := middleware.NewLimiter(container.GetRedis()).Handler(middleware.Limit{
		Max: 120, Window: time.Minute, Scope: middleware.PerIP, Bypass: middleware.FromPrivateNetwork,
	})

	rg.GET("/healthz", m.Health.Healthz)
	rg.GET("/metrics", rl, gin.WrapH(promhttp.Handler()))
	if m.ExposeVars {
		rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	}
}
