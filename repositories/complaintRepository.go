// Package repositories abstracts persistence for complaints, verified
// identities, and pending OTP challenges. Each store has a Mongo-backed and
// an in-memory implementation with identical behavior; the in-memory ones
// carry the server when no database is configured and back the tests.
package repositories

import (
	"context"
	"errors"
	"time"

	"nagarseva-be/models"
)

var (
	// ErrNotFound is returned when no record matches the given key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when a create collides on complaintId.
	ErrDuplicateID = errors.New("duplicate complaint id")
)

// ComplaintFilter narrows a complaint listing. Zero values mean "no filter".
type ComplaintFilter struct {
	Status    models.ComplaintStatus
	IssueType models.IssueType
	Date      *time.Time // matches the UTC calendar date of createdAt
}

// ComplaintPatch is a sparse update; nil fields are left untouched.
type ComplaintPatch struct {
	Status          *models.ComplaintStatus
	Priority        *models.Priority
	AssignedTo      *string
	ResolutionNotes *string
	ResolutionPhoto *string
}

// ComplaintStats aggregates counts over the full store.
type ComplaintStats struct {
	Total       int64                            `json:"total"`
	ByStatus    map[models.ComplaintStatus]int64 `json:"byStatus"`
	ByIssueType map[models.IssueType]int64       `json:"byIssueType"`
}

// ComplaintRepository is the persistent store for complaint records.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	FindByID(ctx context.Context, complaintID string) (*models.Complaint, error)
	// Find returns a page sorted by createdAt descending plus the total
	// number of records matching the filter.
	Find(ctx context.Context, filter ComplaintFilter, skip, limit int64) ([]models.Complaint, int64, error)
	// Update applies the patch atomically, refreshes updatedAt even for an
	// empty patch, and returns the updated record.
	Update(ctx context.Context, complaintID string, patch ComplaintPatch) (*models.Complaint, error)
	Delete(ctx context.Context, complaintID string) error
	Stats(ctx context.Context) (*ComplaintStats, error)
}

// IdentityRepository stores verified citizen identities keyed by phone.
type IdentityRepository interface {
	FindByPhone(ctx context.Context, phone string) (*models.VerifiedIdentity, error)
	Create(ctx context.Context, identity *models.VerifiedIdentity) error
}

// OTPStore holds at most one pending challenge per phone.
type OTPStore interface {
	// Put stores the challenge, overwriting any outstanding one for the phone.
	Put(ctx context.Context, otp models.PendingOTP) error
	// GetDelete atomically removes and returns the pending challenge so two
	// concurrent verifications cannot both consume the same code.
	GetDelete(ctx context.Context, phone string) (*models.PendingOTP, error)
}
