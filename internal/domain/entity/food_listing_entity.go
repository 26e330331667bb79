package entity

import "time"

type BoxOption string

const (
	BoxNeed   BoxOption = "need"
	BoxNoNeed BoxOption = "noNeed"
)

func (b BoxOption) Valid() bool {
	return b == BoxNeed || b == BoxNoNeed
}

// FoodListing is a giver's single outstanding meal. At most one exists per owner.
// ImageRef is an opaque reference returned by the image store.
type FoodListing struct {
	ID            int64
	OwnerUserID   string
	Description   string
	PickupAddress string
	BoxOption     BoxOption
	FoodTypes     []string
	Ingredients   []string
	Notes         string
	ImageRef      string
	CreatedAt     time.Time
}
