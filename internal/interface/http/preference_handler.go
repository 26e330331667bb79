package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/pkg/apperror"
	"github.com/oksasatya/foodshare/pkg/response"
)

type PreferenceUsecase interface {
	Save(ctx context.Context, p *entity.Preferences) error
	Get(ctx context.Context, userID string) (*entity.Preferences, error)
}

type PreferenceHandler struct {
	Svc    PreferenceUsecase
	Logger *logrus.Logger
}

func NewPreferenceHandler(svc PreferenceUsecase, logger *logrus.Logger) *PreferenceHandler {
	return &PreferenceHandler{Svc: svc, Logger: logger}
}

type savePreferencesRequest struct {
	UserID         string     `json:"userId" binding:"required,uuid"`
	City           string     `json:"city" binding:"required"`
	Radius         flexInt    `json:"radius" binding:"required,gt=0"`
	FoodPreference string     `json:"foodPreference" binding:"required"`
	Allergies      stringList `json:"allergies"`
}

// Save POST /preferences
func (h *PreferenceHandler) Save(c *gin.Context) {
	var req savePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, apperror.ErrInvalidPrefs, err)
		return
	}
	p := &entity.Preferences{
		UserID:         req.UserID,
		City:           req.City,
		Radius:         int(req.Radius),
		FoodPreference: req.FoodPreference,
		Allergies:      []string(req.Allergies),
	}
	if err := h.Svc.Save(c.Request.Context(), p); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Preferences saved successfully", nil)
}

// Get GET /preferences/:userId
func (h *PreferenceHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"preferences": toPreferencesDTO(p)}, "ok", nil)
}
