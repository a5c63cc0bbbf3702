package models

import "time"

// VerifiedIdentity is a citizen's pseudonymous session anchor, created on the
// first successful OTP verification for a phone number.
type VerifiedIdentity struct {
	Phone     string    `bson:"phone" json:"phone"`
	CitizenID string    `bson:"citizenId" json:"citizenId"`
	JoinedAt  time.Time `bson:"joinedAt" json:"joinedAt"`
}
