package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/foodshare/internal/container"
	handlers "github.com/oksasatya/foodshare/internal/interface/http"
	"github.com/oksasatya/foodshare/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     middleware.TokenValidator
}

func NewAuthModule(h *handlers.AuthHandler, jwt middleware.TokenValidator) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	lim := middleware.NewLimiter(container.GetRedis())

	// public endpoints, limited per caller IP
	sendCodeLimiter := lim.Handler(middleware.Limit{Max: 5, Window: time.Minute, Scope: middleware.PerIPAndRoute})
	verifyCodeLimiter := lim.Handler(middleware.Limit{Max: 30, Window: time.Minute, Scope: middleware.PerIPAndRoute})
	loginLimiter := lim.Handler(middleware.Limit{Max: 10, Window: time.Minute, Scope: middleware.PerIP})
	registerLimiter := lim.Handler(middleware.Limit{Max: 10, Window: time.Minute, Scope: middleware.PerIPAndRoute})

	rg.POST("/auth/send-code", sendCodeLimiter, m.Handler.SendCode)
	rg.POST("/auth/verify-code", verifyCodeLimiter, m.Handler.VerifyCode)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/register-details", registerLimiter, m.Handler.RegisterDetails)

	rg.GET("/auth/me", middleware.Auth(m.JWT), m.Handler.Me)
}
