package router

import "github.com/gin-gonic/gin"

// Module is a feature (auth, food, preferences, debug) that mounts its own
// routes and per-route middleware on the root group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
