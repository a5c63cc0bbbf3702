package repositories

import (
	"context"
	"time"

	"nagarseva-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoComplaintRepository persists complaints in a MongoDB collection.
type MongoComplaintRepository struct {
	collection *mongo.Collection
}

// NewMongoComplaintRepository creates the repository and ensures the unique
// complaintId index exists.
func NewMongoComplaintRepository(collection *mongo.Collection) (*MongoComplaintRepository, error) {
	if err := models.EnsureComplaintIndexes(collection); err != nil {
		return nil, err
	}
	return &MongoComplaintRepository{collection: collection}, nil
}

func (r *MongoComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	_, err := r.collection.InsertOne(ctx, complaint)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	return err
}

func (r *MongoComplaintRepository) FindByID(ctx context.Context, complaintID string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.collection.FindOne(ctx, bson.M{"complaintId": complaintID}).Decode(&complaint)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func buildMongoFilter(filter ComplaintFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.IssueType != "" {
		query["issueType"] = filter.IssueType
	}
	if filter.Date != nil {
		day := filter.Date.UTC().Truncate(24 * time.Hour)
		query["createdAt"] = bson.M{
			"$gte": day,
			"$lt":  day.Add(24 * time.Hour),
		}
	}
	return query
}

func (r *MongoComplaintRepository) Find(ctx context.Context, filter ComplaintFilter, skip, limit int64) ([]models.Complaint, int64, error) {
	query := buildMongoFilter(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	complaints := []models.Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}

func (r *MongoComplaintRepository) Update(ctx context.Context, complaintID string, patch ComplaintPatch) (*models.Complaint, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	if patch.AssignedTo != nil {
		set["assignedTo"] = *patch.AssignedTo
	}
	if patch.ResolutionNotes != nil {
		set["resolutionNotes"] = *patch.ResolutionNotes
	}
	if patch.ResolutionPhoto != nil {
		set["resolutionPhoto"] = *patch.ResolutionPhoto
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Complaint
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"complaintId": complaintID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoComplaintRepository) Delete(ctx context.Context, complaintID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"complaintId": complaintID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoComplaintRepository) Stats(ctx context.Context) (*ComplaintStats, error) {
	stats := &ComplaintStats{
		ByStatus:    map[models.ComplaintStatus]int64{},
		ByIssueType: map[models.IssueType]int64{},
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stats.Total = total

	statusCounts, err := r.groupCounts(ctx, "$status")
	if err != nil {
		return nil, err
	}
	for key, count := range statusCounts {
		stats.ByStatus[models.ComplaintStatus(key)] = count
	}

	typeCounts, err := r.groupCounts(ctx, "$issueType")
	if err != nil {
		return nil, err
	}
	for key, count := range typeCounts {
		stats.ByIssueType[models.IssueType(key)] = count
	}

	return stats, nil
}

func (r *MongoComplaintRepository) groupCounts(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": field, "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}
