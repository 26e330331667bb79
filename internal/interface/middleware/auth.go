package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/foodshare/pkg/apperror"
	"github.com/oksasatya/foodshare/pkg/response"
)

const CtxUserIDKey = "userID"

// TokenValidator is satisfied by *helpers.JWTManager.
type TokenValidator interface {
	Validate(token string) (string, error)
}

func deny(c *gin.Context, e *apperror.Error) {
	response.Error[any](c, http.StatusUnauthorized, e.Message, gin.H{"code": e.Code})
	c.Abort()
}

// Auth requires "Authorization: Bearer <token>" and sets userID in the Gin context.
func Auth(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			deny(c, apperror.ErrMissingToken)
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			deny(c, apperror.ErrMalformedToken)
			return
		}
		uid, err := v.Validate(token)
		if err != nil {
			deny(c, apperror.ErrInvalidToken)
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}
