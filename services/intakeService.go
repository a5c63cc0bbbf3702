package services

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"nagarseva-be/apperrors"
	"nagarseva-be/models"
	"nagarseva-be/repositories"
	"nagarseva-be/utils"
)

// idRetryAttempts bounds the tracking-ID regeneration loop when the store
// reports a collision.
const idRetryAttempts = 3

// SubmitInput carries a raw complaint submission. Latitude and longitude
// arrive as strings because the form boundary accepts numeric strings.
type SubmitInput struct {
	IssueType   string
	Description string
	Latitude    string
	Longitude   string
	Address     string
	Name        string
	Phone       string
	Email       string
	Photo       *utils.UploadedPhoto
}

// IntakeService orchestrates the complaint submission pipeline: photo
// storage, vision classification, keyword fallback, department routing, ID
// generation, and persistence.
type IntakeService struct {
	complaints repositories.ComplaintRepository
	vision     VisionClassifier
	uploadDir  string
}

// NewIntakeService wires the intake pipeline. vision may be nil when no
// classifier is configured.
func NewIntakeService(complaints repositories.ComplaintRepository, vision VisionClassifier, uploadDir string) *IntakeService {
	return &IntakeService{complaints: complaints, vision: vision, uploadDir: uploadDir}
}

func parseCoordinate(value, name string) (float64, error) {
	if value == "" {
		return 0, apperrors.NewValidationError(name + " is required")
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, apperrors.NewValidationError(name + " must be a finite number")
	}
	return parsed, nil
}

// Submit runs the intake pipeline and returns the created record.
// Classification failures never fail the submission.
func (s *IntakeService) Submit(ctx context.Context, input SubmitInput) (*models.Complaint, error) {
	latitude, err := parseCoordinate(input.Latitude, "latitude")
	if err != nil {
		return nil, err
	}
	longitude, err := parseCoordinate(input.Longitude, "longitude")
	if err != nil {
		return nil, err
	}

	// Unknown caller-supplied categories are treated as unset and left for
	// the classifiers to resolve.
	issueType := models.IssueType(strings.ToLower(strings.TrimSpace(input.IssueType)))
	if !models.ValidIssueType(issueType) {
		issueType = ""
	}

	description := input.Description
	priority := models.PriorityMedium
	aiApplied := false

	photoPath := ""
	if input.Photo != nil {
		photoPath, err = utils.SavePhoto(input.Photo, s.uploadDir)
		if err != nil {
			return nil, err
		}

		if s.vision != nil {
			result, visionErr := s.vision.Classify(ctx, input.Photo.Data, input.Photo.ContentType)
			if visionErr != nil {
				log.Println("Proceeding without AI classification:", visionErr)
			} else {
				issueType = result.IssueType
				priority = result.Priority
				if result.Description != "" {
					description = description + " (AI analysis: " + result.Description + ")"
				}
				aiApplied = true
			}
		}
	}

	if issueType == "" || issueType == models.IssueOther {
		issueType = ClassifyDescription(description)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Anonymous"
	}

	department := DepartmentFor(issueType)
	now := time.Now()
	complaint := &models.Complaint{
		IssueType:   issueType,
		Description: description,
		Photo:       photoPath,
		Location: models.Location{
			Latitude:  latitude,
			Longitude: longitude,
			Address:   input.Address,
		},
		Status:            models.StatusPending,
		Priority:          priority,
		AssignedTo:        department,
		Department:        department,
		Citizen:           models.CitizenInfo{Name: name, Phone: input.Phone, Email: input.Email},
		AIAnalysisApplied: aiApplied,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// The durable store enforces complaintId uniqueness; regenerate on the
	// off chance of a collision.
	for attempt := 0; attempt < idRetryAttempts; attempt++ {
		complaint.ComplaintID = utils.GenerateComplaintID()
		err = s.complaints.Create(ctx, complaint)
		if err != repositories.ErrDuplicateID {
			break
		}
	}
	if err != nil {
		log.Println("Failed to persist complaint:", err)
		return nil, apperrors.NewInternalError("failed to register complaint")
	}

	return complaint, nil
}
