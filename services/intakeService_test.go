package services

import (
	"context"
	"regexp"
	"testing"

	"nagarseva-be/apperrors"
	"nagarseva-be/models"
	"nagarseva-be/repositories"
	"nagarseva-be/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var complaintIDPattern = regexp.MustCompile(`^CMP-[0-9A-Z]+-[0-9A-Z]{4}$`)

// stubVision returns a canned result, or ErrVisionUnavailable when result is nil.
type stubVision struct {
	result *VisionResult
	calls  int
}

func (s *stubVision) Classify(ctx context.Context, imageData []byte, contentType string) (*VisionResult, error) {
	s.calls++
	if s.result == nil {
		return nil, ErrVisionUnavailable
	}
	return s.result, nil
}

func testPhoto() *utils.UploadedPhoto {
	return &utils.UploadedPhoto{
		Filename:    "pothole.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("not really a jpeg"),
	}
}

func validInput() SubmitInput {
	return SubmitInput{
		Description: "pothole in the road",
		Latitude:    "12.9716",
		Longitude:   "77.5946",
		Address:     "MG Road",
	}
}

func TestSubmitClassifiesFromDescription(t *testing.T) {
	repo := repositories.NewMemoryComplaintRepository()
	svc := NewIntakeService(repo, nil, t.TempDir())

	complaint, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, models.IssuePothole, complaint.IssueType)
	assert.Equal(t, "Roads & Highway Dept", complaint.Department)
	assert.Equal(t, "Roads & Highway Dept", complaint.AssignedTo)
	assert.Equal(t, models.StatusPending, complaint.Status)
	assert.Equal(t, models.PriorityMedium, complaint.Priority)
	assert.Equal(t, "Anonymous", complaint.Citizen.Name)
	assert.False(t, complaint.AIAnalysisApplied)
	assert.Regexp(t, complaintIDPattern, complaint.ComplaintID)
	assert.False(t, complaint.CreatedAt.IsZero())

	stored, err := repo.FindByID(context.Background(), complaint.ComplaintID)
	require.NoError(t, err)
	assert.Equal(t, complaint.ComplaintID, stored.ComplaintID)
}

func TestSubmitCoordinateValidation(t *testing.T) {
	svc := NewIntakeService(repositories.NewMemoryComplaintRepository(), nil, t.TempDir())

	tests := []struct {
		name      string
		latitude  string
		longitude string
	}{
		{"missing latitude", "", "77.59"},
		{"missing longitude", "12.97", ""},
		{"non-numeric latitude", "north", "77.59"},
		{"infinite longitude", "12.97", "+Inf"},
		{"nan latitude", "NaN", "77.59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.Latitude = tt.latitude
			input.Longitude = tt.longitude

			_, err := svc.Submit(context.Background(), input)
			require.Error(t, err)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		})
	}
}

func TestSubmitUnknownIssueTypeFallsBackToClassifier(t *testing.T) {
	svc := NewIntakeService(repositories.NewMemoryComplaintRepository(), nil, t.TempDir())

	input := validInput()
	input.IssueType = "alien-invasion"
	input.Description = "garbage all over the park"

	complaint, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, models.IssueGarbage, complaint.IssueType)
	assert.Equal(t, "Solid Waste Management Dept", complaint.Department)
}

func TestSubmitExplicitIssueTypeKept(t *testing.T) {
	svc := NewIntakeService(repositories.NewMemoryComplaintRepository(), nil, t.TempDir())

	input := validInput()
	input.IssueType = "streetlight"
	input.Description = "pothole in the road" // explicit type wins over keywords

	complaint, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, models.IssueStreetlight, complaint.IssueType)
	assert.Equal(t, "Electricity Dept", complaint.Department)
}

func TestSubmitWithPhotoAndUnavailableVision(t *testing.T) {
	// Without a configured vision service a photo submission classifies
	// exactly like a photoless one.
	vision := &stubVision{} // always unavailable
	svc := NewIntakeService(repositories.NewMemoryComplaintRepository(), vision, t.TempDir())

	input := validInput()
	input.Photo = testPhoto()

	complaint, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, vision.calls)
	assert.Equal(t, models.IssuePothole, complaint.IssueType)
	assert.Equal(t, "pothole in the road", complaint.Description)
	assert.False(t, complaint.AIAnalysisApplied)
	assert.Contains(t, complaint.Photo, "/uploads/")
}

func TestSubmitVisionOverridesClassification(t *testing.T) {
	vision := &stubVision{result: &VisionResult{
		IssueType:   models.IssueWaterLeakage,
		Priority:    models.PriorityHigh,
		Description: "burst pipe flooding the street",
	}}
	svc := NewIntakeService(repositories.NewMemoryComplaintRepository(), vision, t.TempDir())

	input := validInput()
	input.IssueType = "pothole"
	input.Photo = testPhoto()

	complaint, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, models.IssueWaterLeakage, complaint.IssueType)
	assert.Equal(t, "Water Supply Dept", complaint.Department)
	assert.Equal(t, models.PriorityHigh, complaint.Priority)
	assert.Equal(t, "pothole in the road (AI analysis: burst pipe flooding the street)", complaint.Description)
	assert.True(t, complaint.AIAnalysisApplied)
}

func TestSubmitRejectsOversizePhoto(t *testing.T) {
	svc := NewIntakeService(repositories.NewMemoryComplaintRepository(), nil, t.TempDir())

	input := validInput()
	input.Photo = &utils.UploadedPhoto{
		Filename:    "big.jpg",
		ContentType: "image/jpeg",
		Data:        make([]byte, utils.MaxPhotoSize+1),
	}

	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnsupportedMedia, appErr.Type)
}

// collidingRepo reports a duplicate ID for the first N creates.
type collidingRepo struct {
	*repositories.MemoryComplaintRepository
	collisions int
	attempts   int
}

func (r *collidingRepo) Create(ctx context.Context, complaint *models.Complaint) error {
	r.attempts++
	if r.attempts <= r.collisions {
		return repositories.ErrDuplicateID
	}
	return r.MemoryComplaintRepository.Create(ctx, complaint)
}

func TestSubmitRetriesOnIDCollision(t *testing.T) {
	repo := &collidingRepo{
		MemoryComplaintRepository: repositories.NewMemoryComplaintRepository(),
		collisions:                2,
	}
	svc := NewIntakeService(repo, nil, t.TempDir())

	complaint, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 3, repo.attempts)
	assert.Regexp(t, complaintIDPattern, complaint.ComplaintID)
}
