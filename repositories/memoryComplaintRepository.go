package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"nagarseva-be/models"
)

// MemoryComplaintRepository is the in-process fallback store. Behavior
// matches the Mongo repository except for durability.
type MemoryComplaintRepository struct {
	mu         sync.RWMutex
	complaints map[string]models.Complaint
}

// NewMemoryComplaintRepository creates an empty in-memory store.
func NewMemoryComplaintRepository() *MemoryComplaintRepository {
	return &MemoryComplaintRepository{complaints: map[string]models.Complaint{}}
}

func (r *MemoryComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.complaints[complaint.ComplaintID]; exists {
		return ErrDuplicateID
	}
	r.complaints[complaint.ComplaintID] = *complaint
	return nil
}

func (r *MemoryComplaintRepository) FindByID(ctx context.Context, complaintID string) (*models.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	complaint, exists := r.complaints[complaintID]
	if !exists {
		return nil, ErrNotFound
	}
	return &complaint, nil
}

func matchesFilter(complaint models.Complaint, filter ComplaintFilter) bool {
	if filter.Status != "" && complaint.Status != filter.Status {
		return false
	}
	if filter.IssueType != "" && complaint.IssueType != filter.IssueType {
		return false
	}
	if filter.Date != nil {
		want := filter.Date.UTC().Truncate(24 * time.Hour)
		got := complaint.CreatedAt.UTC().Truncate(24 * time.Hour)
		if !want.Equal(got) {
			return false
		}
	}
	return true
}

func (r *MemoryComplaintRepository) Find(ctx context.Context, filter ComplaintFilter, skip, limit int64) ([]models.Complaint, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Complaint{}
	for _, complaint := range r.complaints {
		if matchesFilter(complaint, filter) {
			matched = append(matched, complaint)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if skip >= total {
		return []models.Complaint{}, total, nil
	}
	matched = matched[skip:]
	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *MemoryComplaintRepository) Update(ctx context.Context, complaintID string, patch ComplaintPatch) (*models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	complaint, exists := r.complaints[complaintID]
	if !exists {
		return nil, ErrNotFound
	}

	if patch.Status != nil {
		complaint.Status = *patch.Status
	}
	if patch.Priority != nil {
		complaint.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		complaint.AssignedTo = *patch.AssignedTo
	}
	if patch.ResolutionNotes != nil {
		complaint.ResolutionNotes = *patch.ResolutionNotes
	}
	if patch.ResolutionPhoto != nil {
		complaint.ResolutionPhoto = *patch.ResolutionPhoto
	}
	complaint.UpdatedAt = time.Now()

	r.complaints[complaintID] = complaint
	return &complaint, nil
}

func (r *MemoryComplaintRepository) Delete(ctx context.Context, complaintID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.complaints[complaintID]; !exists {
		return ErrNotFound
	}
	delete(r.complaints, complaintID)
	return nil
}

func (r *MemoryComplaintRepository) Stats(ctx context.Context) (*ComplaintStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &ComplaintStats{
		Total:       int64(len(r.complaints)),
		ByStatus:    map[models.ComplaintStatus]int64{},
		ByIssueType: map[models.IssueType]int64{},
	}
	for _, complaint := range r.complaints {
		stats.ByStatus[complaint.Status]++
		stats.ByIssueType[complaint.IssueType]++
	}
	return stats, nil
}
