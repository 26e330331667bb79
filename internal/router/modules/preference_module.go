package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/foodshare/internal/container"
	handlers "github.com/oksasatya/foodshare/internal/interface/http"
	"github.com/oksasatya/foodshare/internal/interface/middleware"
)

type PreferenceModule struct {
	Handler *handlers.PreferenceHandler
}

func NewPreferenceModule(h *handlers.PreferenceHandler) *PreferenceModule {
	return &PreferenceModule{Handler: h}
}

func (m *PreferenceModule) Register(rg *gin.RouterGroup) {
	rl := middleware.NewLimiter(container.GetRedis()).Handler(middleware.Limit{Max: 60, Window: time.Minute, Scope: middleware.PerIP})
	rg.POST("/preferences", rl, m.Handler.Save)
	rg.GET("/preferences/:userId", rl, m.Handler.Get)
}
