package entity

import "time"

type Preferences struct {
	UserID         string
	City           string
	Radius         int
	FoodPreference string
	Allergies      []string
	UpdatedAt      time.Time
}
