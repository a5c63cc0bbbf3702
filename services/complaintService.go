package services

import (
	"context"
	"log"
	"time"

	"nagarseva-be/apperrors"
	"nagarseva-be/models"
	"nagarseva-be/repositories"
	"nagarseva-be/utils"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// ListQuery carries the raw dashboard listing parameters.
type ListQuery struct {
	Status    string
	IssueType string
	Date      string // ISO date (YYYY-MM-DD)
	Limit     int64
	Skip      int64
}

// ListResult is one page of complaints plus the total match count.
type ListResult struct {
	Data  []models.Complaint `json:"data"`
	Total int64              `json:"total"`
	Limit int64              `json:"limit"`
	Skip  int64              `json:"skip"`
}

// UpdateInput is a sparse lifecycle patch; nil fields are untouched.
type UpdateInput struct {
	Status          *string
	Priority        *string
	AssignedTo      *string
	ResolutionNotes *string
	ResolutionPhoto *utils.UploadedPhoto
}

// ComplaintService manages the complaint lifecycle: querying, status and
// assignment mutations, deletion, and aggregate stats.
type ComplaintService struct {
	complaints repositories.ComplaintRepository
	uploadDir  string
}

// NewComplaintService wires the lifecycle manager.
func NewComplaintService(complaints repositories.ComplaintRepository, uploadDir string) *ComplaintService {
	return &ComplaintService{complaints: complaints, uploadDir: uploadDir}
}

// List returns a page of complaints sorted by createdAt descending.
func (s *ComplaintService) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	filter := repositories.ComplaintFilter{
		Status:    models.ComplaintStatus(query.Status),
		IssueType: models.IssueType(query.IssueType),
	}
	if query.Date != "" {
		day, err := time.Parse("2006-01-02", query.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("date must be in YYYY-MM-DD format")
		}
		filter.Date = &day
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	skip := query.Skip
	if skip < 0 {
		skip = 0
	}

	data, total, err := s.complaints.Find(ctx, filter, skip, limit)
	if err != nil {
		log.Println("Failed to list complaints:", err)
		return nil, apperrors.NewInternalError("failed to retrieve complaints")
	}
	return &ListResult{Data: data, Total: total, Limit: limit, Skip: skip}, nil
}

// Get fetches one complaint by its tracking ID.
func (s *ComplaintService) Get(ctx context.Context, complaintID string) (*models.Complaint, error) {
	complaint, err := s.complaints.FindByID(ctx, complaintID)
	if err == repositories.ErrNotFound {
		return nil, apperrors.NewNotFoundError("complaint not found")
	}
	if err != nil {
		log.Println("Failed to fetch complaint:", err)
		return nil, apperrors.NewInternalError("failed to retrieve complaint")
	}
	return complaint, nil
}

// Update applies a sparse patch. Present fields are validated against their
// enums; updatedAt is refreshed even for an empty patch.
func (s *ComplaintService) Update(ctx context.Context, complaintID string, input UpdateInput) (*models.Complaint, error) {
	patch := repositories.ComplaintPatch{
		AssignedTo:      input.AssignedTo,
		ResolutionNotes: input.ResolutionNotes,
	}

	if input.Status != nil {
		status := models.ComplaintStatus(*input.Status)
		if !models.ValidStatus(status) {
			return nil, apperrors.NewValidationError("invalid status: " + *input.Status)
		}
		patch.Status = &status
	}
	if input.Priority != nil {
		priority := models.Priority(*input.Priority)
		if !models.ValidPriority(priority) {
			return nil, apperrors.NewValidationError("invalid priority: " + *input.Priority)
		}
		patch.Priority = &priority
	}
	if input.ResolutionPhoto != nil {
		path, err := utils.SavePhoto(input.ResolutionPhoto, s.uploadDir)
		if err != nil {
			return nil, err
		}
		patch.ResolutionPhoto = &path
	}

	updated, err := s.complaints.Update(ctx, complaintID, patch)
	if err == repositories.ErrNotFound {
		return nil, apperrors.NewNotFoundError("complaint not found")
	}
	if err != nil {
		log.Println("Failed to update complaint:", err)
		return nil, apperrors.NewInternalError("failed to update complaint")
	}
	return updated, nil
}

// Delete permanently removes a complaint.
func (s *ComplaintService) Delete(ctx context.Context, complaintID string) error {
	err := s.complaints.Delete(ctx, complaintID)
	if err == repositories.ErrNotFound {
		return apperrors.NewNotFoundError("complaint not found")
	}
	if err != nil {
		log.Println("Failed to delete complaint:", err)
		return apperrors.NewInternalError("failed to delete complaint")
	}
	return nil
}

// Stats aggregates counts over the full store.
func (s *ComplaintService) Stats(ctx context.Context) (*repositories.ComplaintStats, error) {
	stats, err := s.complaints.Stats(ctx)
	if err != nil {
		log.Println("Failed to compute stats:", err)
		return nil, apperrors.NewInternalError("failed to compute stats")
	}
	return stats, nil
}
