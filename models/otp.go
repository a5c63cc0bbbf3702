package models

import "time"

// PendingOTP is a transient verification challenge. At most one exists per
// phone; sending a new code overwrites the previous one.
type PendingOTP struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the challenge is past its expiry at the given time.
func (o PendingOTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
