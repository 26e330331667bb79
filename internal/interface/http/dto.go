package handlers

import (
	"time"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

type userDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *entity.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Username:  u.Username,
		Phone:     u.Phone,
		Name:      u.Name,
		Email:     u.Email,
		Gender:    u.Gender,
		CreatedAt: u.CreatedAt,
	}
}

type listingDTO struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"user_id"`
	ItemDescription string    `json:"item_description"`
	PickupAddress   string    `json:"pickup_address"`
	BoxOption       string    `json:"box_option"`
	FoodTypes       []string  `json:"food_types"`
	Ingredients     []string  `json:"ingredients"`
	SpecialNotes    string    `json:"special_notes"`
	ImageURL        *string   `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

func toListingDTO(l *entity.FoodListing) listingDTO {
	d := listingDTO{
		ID:              l.ID,
		UserID:          l.OwnerUserID,
		ItemDescription: l.Description,
		PickupAddress:   l.PickupAddress,
		BoxOption:       string(l.BoxOption),
		FoodTypes:       nonNil(l.FoodTypes),
		Ingredients:     nonNil(l.Ingredients),
		SpecialNotes:    l.Notes,
		CreatedAt:       l.CreatedAt,
	}
	if l.ImageRef != "" {
		ref := l.ImageRef
		d.ImageURL = &ref
	}
	return d
}

type preferencesDTO struct {
	UserID         string    `json:"user_id"`
	City           string    `json:"city"`
	Radius         int       `json:"radius"`
	FoodPreference string    `json:"food_preference"`
	Allergies      []string  `json:"allergies"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toPreferencesDTO(p *entity.Preferences) *preferencesDTO {
	if p == nil {
		return nil
	}
	return &preferencesDTO{
		UserID:         p.UserID,
		City:           p.City,
		Radius:         p.Radius,
		FoodPreference: p.FoodPreference,
		Allergies:      nonNil(p.Allergies),
		UpdatedAt:      p.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
