package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodshare/pkg/apperror"
	"github.com/oksasatya/foodshare/pkg/response"
	"github.com/oksasatya/foodshare/pkg/validation"
)

func statusFor(err error) int {
	if errors.Is(err, apperror.ErrInvalidCredentials) {
		return http.StatusBadRequest
	}
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindConflict:
		return http.StatusBadRequest
	case apperror.KindAuthentication:
		return http.StatusUnauthorized
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the envelope for err. Server-side failures are logged and
// answered with a generic message.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	failWithStatus(c, logger, statusFor(err), err)
}

func failWithStatus(c *gin.Context, logger *logrus.Logger, status int, err error) {
	ae := apperror.As(err)
	if ae == nil {
		ae = apperror.Persistence(err)
	}
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
				"kind":       ae.Kind.String(),
			}).Error("request failed")
		}
		response.Error[any](c, status, "internal server error", gin.H{"code": ae.Code})
		return
	}
	response.Error[any](c, status, ae.Message, gin.H{"code": ae.Code})
}

// failBinding answers a payload that could not be bound, using def for the message.
func failBinding(c *gin.Context, def *apperror.Error, err error) {
	response.Error[any](c, http.StatusBadRequest, def.Message, gin.H{
		"code":    def.Code,
		"details": validation.ToDetails(err),
	})
}
