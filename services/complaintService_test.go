package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"nagarseva-be/apperrors"
	"nagarseva-be/models"
	"nagarseva-be/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedComplaint(t *testing.T, repo repositories.ComplaintRepository, id string, createdAt time.Time, issueType models.IssueType, status models.ComplaintStatus) models.Complaint {
	t.Helper()
	complaint := models.Complaint{
		ComplaintID: id,
		IssueType:   issueType,
		Description: "seeded",
		Location:    models.Location{Latitude: 12.9, Longitude: 77.5},
		Status:      status,
		Priority:    models.PriorityMedium,
		Department:  DepartmentFor(issueType),
		AssignedTo:  DepartmentFor(issueType),
		Citizen:     models.CitizenInfo{Name: "Anonymous"},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), &complaint))
	return complaint
}

func TestListPaginationAndOrder(t *testing.T) {
	repo := repositories.NewMemoryComplaintRepository()
	svc := NewComplaintService(repo, t.TempDir())

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedComplaint(t, repo, fmt.Sprintf("CMP-TEST-%04d", i), base.Add(time.Duration(i)*time.Hour), models.IssueGarbage, models.StatusPending)
	}

	result, err := svc.List(context.Background(), ListQuery{Limit: 2, Skip: 0})
	require.NoError(t, err)

	assert.EqualValues(t, 5, result.Total)
	require.Len(t, result.Data, 2)
	// Most recently created first.
	assert.Equal(t, "CMP-TEST-0004", result.Data[0].ComplaintID)
	assert.Equal(t, "CMP-TEST-0003", result.Data[1].ComplaintID)
}

func TestListFilters(t *testing.T) {
	repo := repositories.NewMemoryComplaintRepository()
	svc := NewComplaintService(repo, t.TempDir())

	day1 := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 0, 30, 0, 0, time.UTC)
	seedComplaint(t, repo, "CMP-TEST-A", day1, models.IssuePothole, models.StatusPending)
	seedComplaint(t, repo, "CMP-TEST-B", day2, models.IssueGarbage, models.StatusResolved)
	seedComplaint(t, repo, "CMP-TEST-C", day2, models.IssuePothole, models.StatusResolved)

	byStatus, err := svc.List(context.Background(), ListQuery{Status: "resolved"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, byStatus.Total)

	byType, err := svc.List(context.Background(), ListQuery{IssueType: "pothole"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, byType.Total)

	byDate, err := svc.List(context.Background(), ListQuery{Date: "2025-06-01"})
	require.NoError(t, err)
	require.EqualValues(t, 1, byDate.Total)
	assert.Equal(t, "CMP-TEST-A", byDate.Data[0].ComplaintID)

	_, err = svc.List(context.Background(), ListQuery{Date: "01/06/2025"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetAppError(err).Type)
}

func TestListLimitDefaultsAndCap(t *testing.T) {
	svc := NewComplaintService(repositories.NewMemoryComplaintRepository(), t.TempDir())

	result, err := svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 100, result.Limit)
	assert.EqualValues(t, 0, result.Skip)

	result, err = svc.List(context.Background(), ListQuery{Limit: 5000, Skip: -3})
	require.NoError(t, err)
	assert.EqualValues(t, 1000, result.Limit)
	assert.EqualValues(t, 0, result.Skip)
}

func TestGetNotFound(t *testing.T) {
	svc := NewComplaintService(repositories.NewMemoryComplaintRepository(), t.TempDir())

	_, err := svc.Get(context.Background(), "CMP-MISSING-0000")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateEmptyPatchRefreshesUpdatedAt(t *testing.T) {
	repo := repositories.NewMemoryComplaintRepository()
	svc := NewComplaintService(repo, t.TempDir())

	created := seedComplaint(t, repo, "CMP-TEST-A", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), models.IssuePothole, models.StatusPending)

	updated, err := svc.Update(context.Background(), created.ComplaintID, UpdateInput{})
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	// Everything else stays untouched.
	assert.Equal(t, created.Status, updated.Status)
	assert.Equal(t, created.Priority, updated.Priority)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.AssignedTo, updated.AssignedTo)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateAppliesSparsePatch(t *testing.T) {
	repo := repositories.NewMemoryComplaintRepository()
	svc := NewComplaintService(repo, t.TempDir())
	created := seedComplaint(t, repo, "CMP-TEST-A", time.Now(), models.IssuePothole, models.StatusPending)

	status := "in-progress"
	assignee := "Ward Officer 12"
	updated, err := svc.Update(context.Background(), created.ComplaintID, UpdateInput{
		Status:     &status,
		AssignedTo: &assignee,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, "Ward Officer 12", updated.AssignedTo)
	assert.Equal(t, created.Priority, updated.Priority)
}

func TestUpdateRejectsInvalidEnums(t *testing.T) {
	repo := repositories.NewMemoryComplaintRepository()
	svc := NewComplaintService(repo, t.TempDir())
	created := seedComplaint(t, repo, "CMP-TEST-A", time.Now(), models.IssuePothole, models.StatusPending)

	badStatus := "escalated"
	_, err := svc.Update(context.Background(), created.ComplaintID, UpdateInput{Status: &badStatus})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetAppError(err).Type)

	badPriority := "urgent"
	_, err = svc.Update(context.Background(), created.ComplaintID, UpdateInput{Priority: &badPriority})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetAppError(err).Type)
}

func TestUpdatePermissiveStatusTransitions(t *testing.T) {
	repo := repositories.NewMemoryComplaintRepository()
	svc := NewComplaintService(repo, t.TempDir())
	created := seedComplaint(t, repo, "CMP-TEST-A", time.Now(), models.IssuePothole, models.StatusResolved)

	// Any enum value is reachable from any other, including resolved -> pending.
	status := "pending"
	updated, err := svc.Update(context.Background(), created.ComplaintID, UpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
}

func TestDeleteComplaint(t *testing.T) {
	repo := repositories.NewMemoryComplaintRepository()
	svc := NewComplaintService(repo, t.TempDir())
	created := seedComplaint(t, repo, "CMP-TEST-A", time.Now(), models.IssuePothole, models.StatusPending)

	require.NoError(t, svc.Delete(context.Background(), created.ComplaintID))

	_, err := svc.Get(context.Background(), created.ComplaintID)
	assert.True(t, apperrors.IsNotFound(err))

	err = svc.Delete(context.Background(), created.ComplaintID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStats(t *testing.T) {
	repo := repositories.NewMemoryComplaintRepository()
	svc := NewComplaintService(repo, t.TempDir())

	now := time.Now()
	seedComplaint(t, repo, "CMP-TEST-A", now, models.IssuePothole, models.StatusPending)
	seedComplaint(t, repo, "CMP-TEST-B", now, models.IssuePothole, models.StatusResolved)
	seedComplaint(t, repo, "CMP-TEST-C", now, models.IssueGarbage, models.StatusPending)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.ByStatus[models.StatusPending])
	assert.EqualValues(t, 1, stats.ByStatus[models.StatusResolved])
	assert.EqualValues(t, 2, stats.ByIssueType[models.IssuePothole])
	assert.EqualValues(t, 1, stats.ByIssueType[models.IssueGarbage])
}
