package services

import (
	"testing"

	"nagarseva-be/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        models.IssueType
	}{
		{"pothole phrase", "There is a huge pothole in the road near my house", models.IssuePothole},
		{"road damage", "Road damage after the rains, very dangerous", models.IssuePothole},
		{"garbage", "Garbage has been piling up for a week", models.IssueGarbage},
		{"trash uppercase", "TRASH everywhere on the corner", models.IssueGarbage},
		{"streetlight", "The street light is broken since Monday", models.IssueStreetlight},
		{"water leakage", "Major water leak from the main pipe", models.IssueWaterLeakage},
		{"drainage", "Blocked drainage flooding the lane", models.IssueWaterLeakage},
		{"dirty toilet", "The public toilet is unusable", models.IssueDirtyToilet},
		{"no match", "My neighbour plays loud music at night", models.IssueOther},
		{"empty", "", models.IssueOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDescription(tt.description))
		})
	}
}

func TestClassifyDescriptionPriorityOrder(t *testing.T) {
	// Pothole terms are checked before garbage terms; the first matching
	// category wins even when several could apply.
	got := ClassifyDescription("garbage dumped inside the pothole")
	assert.Equal(t, models.IssuePothole, got)
}
