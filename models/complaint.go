package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IssueType enum
type IssueType string

const (
	IssuePothole      IssueType = "pothole"
	IssueGarbage      IssueType = "garbage"
	IssueStreetlight  IssueType = "streetlight"
	IssueWaterLeakage IssueType = "water-leakage"
	IssueDirtyToilet  IssueType = "dirty-toilet"
	IssueOther        IssueType = "other"
)

// ComplaintStatus enum
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in-progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
)

// Priority enum
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ValidIssueType reports whether t is a member of the issue type enum.
func ValidIssueType(t IssueType) bool {
	switch t {
	case IssuePothole, IssueGarbage, IssueStreetlight, IssueWaterLeakage, IssueDirtyToilet, IssueOther:
		return true
	}
	return false
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// ValidPriority reports whether p is a member of the priority enum.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// CitizenInfo holds the optional, unauthenticated contact details attached to
// a submission.
type CitizenInfo struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// Location is the reported geolocation of a complaint.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
}

// Complaint represents a civic issue reported by a citizen.
type Complaint struct {
	ComplaintID       string          `bson:"complaintId" json:"complaintId"`
	IssueType         IssueType       `bson:"issueType" json:"issueType"`
	Description       string          `bson:"description" json:"description"`
	Photo             string          `bson:"photo,omitempty" json:"photo,omitempty"`
	Location          Location        `bson:"location" json:"location"`
	Status            ComplaintStatus `bson:"status" json:"status"`
	Priority          Priority        `bson:"priority" json:"priority"`
	AssignedTo        string          `bson:"assignedTo" json:"assignedTo"`
	Department        string          `bson:"department" json:"department"`
	Citizen           CitizenInfo     `bson:"citizen" json:"citizen"`
	ResolutionPhoto   string          `bson:"resolutionPhoto,omitempty" json:"resolutionPhoto,omitempty"`
	ResolutionNotes   string          `bson:"resolutionNotes,omitempty" json:"resolutionNotes,omitempty"`
	AIAnalysisApplied bool            `bson:"aiAnalysisApplied" json:"aiAnalysisApplied"`
	CreatedAt         time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// EnsureComplaintIndexes creates the unique index on complaintId so the
// durable store rejects tracking-ID collisions.
func EnsureComplaintIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "complaintId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
