package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/foodshare/internal/container"
	handlers "github.com/oksasatya/foodshare/internal/interface/http"
	"github.com/oksasatya/foodshare/internal/interface/middleware"
)

// FoodModule mounts the listing routes. All of them require a session.
type FoodModule struct {
	Handler *handlers.FoodHandler
	JWT     middleware.TokenValidator
}

func NewFoodModule(h *handlers.FoodHandler, jwt middleware.TokenValidator) *FoodModule {
	return &FoodModule{Handler: h, JWT: jwt}
}

func (m *FoodModule) Register(rg *gin.RouterGroup) {
	food := rg.Group("/food")
	food.Use(middleware.Auth(m.JWT))
	food.Use(middleware.NewLimiter(container.GetRedis()).Handler(middleware.Limit{Max: 120, Window: time.Minute, Scope: middleware.PerUser}))
	{
		food.POST("/give", m.Handler.Give)
		food.GET("/search", m.Handler.Search)
		food.GET("/:id", m.Handler.Get)
		food.DELETE("/:id", m.Handler.Cancel)
	}
}
