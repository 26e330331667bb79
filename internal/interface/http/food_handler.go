package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodshare/internal/application"
	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/pkg/apperror"
	"github.com/oksasatya/foodshare/pkg/response"
)

// maxImageBytes bounds the listing photo upload.
const maxImageBytes = 8 << 20

type FoodUsecase interface {
	Give(ctx context.Context, ownerID string, in application.GiveInput, img *application.Image) (*entity.FoodListing, error)
	Get(ctx context.Context, id int64) (*entity.FoodListing, error)
	Cancel(ctx context.Context, ownerID string, id int64) error
	Search(ctx context.Context, q string, size int) ([]entity.FoodListing, error)
}

type FoodHandler struct {
	Svc    FoodUsecase
	Logger *logrus.Logger
}

func NewFoodHandler(svc FoodUsecase, logger *logrus.Logger) *FoodHandler {
	return &FoodHandler{Svc: svc, Logger: logger}
}

type giveForm struct {
	ItemDescription string `form:"itemDescription" binding:"required"`
	PickupAddress   string `form:"pickupAddress" binding:"required"`
	BoxOption       string `form:"boxOption" binding:"required,boxoption"`
	SpecialNotes    string `form:"specialNotes"`
}

// Give POST /food/give (multipart, auth required)
// foodTypes and ingredients may be repeated or comma-joined; the photo goes in "image".
func (h *FoodHandler) Give(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes+1<<20)

	var form giveForm
	if err := c.ShouldBind(&form); err != nil {
		if form.ItemDescription != "" && form.PickupAddress != "" && form.BoxOption != "" {
			failBinding(c, apperror.ErrInvalidBoxOpt, err)
			return
		}
		failBinding(c, apperror.ErrInvalidListing, err)
		return
	}
	in := application.GiveInput{
		Description:   form.ItemDescription,
		PickupAddress: form.PickupAddress,
		BoxOption:     form.BoxOption,
		FoodTypes:     formList(c.PostFormArray("foodTypes")),
		Ingredients:   formList(c.PostFormArray("ingredients")),
		Notes:         form.SpecialNotes,
	}

	var img *application.Image
	if fh, err := c.FormFile("image"); err == nil {
		if fh.Size > maxImageBytes {
			fail(c, h.Logger, apperror.Validation("image_too_large", "Image must be at most 8 MB"))
			return
		}
		f, err := fh.Open()
		if err != nil {
			fail(c, h.Logger, apperror.Validation("invalid_image", "Image could not be read"))
			return
		}
		defer func() { _ = f.Close() }()
		img = &application.Image{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Body: f}
	}

	l, err := h.Svc.Give(c.Request.Context(), c.GetString("userID"), in, img)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"foodItemId": l.ID}, "Food item uploaded successfully", nil)
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}

// Get GET /food/:id
func (h *FoodHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		fail(c, h.Logger, apperror.ErrInvalidListID)
		return
	}
	l, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			response.Error[any](c, http.StatusNotFound, "Food item not found", gin.H{"code": apperror.ErrListingNotFound.Code})
			return
		}
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"foodItem": toListingDTO(l)}, "Food item retrieved", nil)
}

// Cancel DELETE /food/:id
func (h *FoodHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		fail(c, h.Logger, apperror.ErrInvalidListID)
		return
	}
	if err := h.Svc.Cancel(c.Request.Context(), c.GetString("userID"), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Meal deleted successfully", nil)
}

// Search GET /food/search?q=&size=
func (h *FoodHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	items, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]listingDTO, 0, len(items))
	for i := range items {
		out = append(out, toListingDTO(&items[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"items": out}, "ok", map[string]any{"count": len(out)})
}
