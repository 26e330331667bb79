package application

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/internal/domain/repository"
	"github.com/oksasatya/foodshare/pkg/apperror"
)

// FoodService runs the listing lifecycle: an owner has either no listing or
// exactly one, created by Give and removed by Cancel.
type FoodService struct {
	Repo   repository.FoodRepository
	Images ImageStore
	Index  ListingIndex
	Logger *logrus.Logger
}

func NewFoodService(repo repository.FoodRepository, images ImageStore, index ListingIndex, logger *logrus.Logger) *FoodService {
	return &FoodService{Repo: repo, Images: images, Index: index, Logger: logger}
}

type GiveInput struct {
	Description   string
	PickupAddress string
	BoxOption     string
	FoodTypes     []string
	Ingredients   []string
	Notes         string
}

// Image is an optional upload accompanying a listing.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func (s *FoodService) Give(ctx context.Context, ownerID string, in GiveInput, img *Image) (*entity.FoodListing, error) {
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.PickupAddress) == "" {
		return nil, apperror.ErrInvalidListing
	}
	box := entity.BoxOption(in.BoxOption)
	if !box.Valid() {
		return nil, apperror.ErrInvalidBoxOpt
	}

	l := &entity.FoodListing{
		OwnerUserID:   ownerID,
		Description:   in.Description,
		PickupAddress: in.PickupAddress,
		BoxOption:     box,
		FoodTypes:     in.FoodTypes,
		Ingredients:   in.Ingredients,
		Notes:         in.Notes,
	}

	if img != nil && s.Images != nil {
		ref, err := s.Images.Upload(ctx, ownerID, img.Filename, img.ContentType, img.Body)
		if err != nil {
			return nil, apperror.External("image_upload_failed", err)
		}
		l.ImageRef = ref
	}

	if err := s.Repo.CreateIfNone(ctx, l); err != nil {
		if l.ImageRef != "" {
			s.discardImage(ctx, l.ImageRef)
		}
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.Index(ctx, l); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("listing_id", l.ID).Warn("index listing failed")
		}
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": ownerID, "listing_id": l.ID}).Info("listing created")
	}
	return l, nil
}

func (s *FoodService) discardImage(ctx context.Context, ref string) {
	if err := s.Images.Delete(ctx, ref); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("remove orphaned listing image failed")
	}
}

func (s *FoodService) Get(ctx context.Context, id int64) (*entity.FoodListing, error) {
	return s.Repo.GetByID(ctx, id)
}

// Cancel removes the owner's listing. Another user's listing id reports as not found.
func (s *FoodService) Cancel(ctx context.Context, ownerID string, id int64) error {
	if err := s.Repo.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("listing_id", id).Warn("unindex listing failed")
		}
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": ownerID, "listing_id": id}).Info("listing cancelled")
	}
	return nil
}

func (s *FoodService) Search(ctx context.Context, q string, size int) ([]entity.FoodListing, error) {
	if s.Index == nil {
		return []entity.FoodListing{}, nil
	}
	items, err := s.Index.Search(ctx, strings.TrimSpace(q), size)
	if err != nil {
		return nil, apperror.External("search_unavailable", err)
	}
	return items, nil
}
