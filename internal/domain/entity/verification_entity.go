package entity

import "time"

// VerificationRecord is the one live one-time code for a phone number.
type VerificationRecord struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the record is past its validity window at now.
func (r VerificationRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// VerifiedPhone is the single-use proof produced by a successful code check.
type VerifiedPhone struct {
	Phone      string
	VerifiedAt time.Time
}
