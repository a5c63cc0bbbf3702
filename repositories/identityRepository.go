package repositories

import (
	"context"
	"sync"

	"nagarseva-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoIdentityRepository stores verified identities in MongoDB.
type MongoIdentityRepository struct {
	collection *mongo.Collection
}

// NewMongoIdentityRepository creates a Mongo-backed identity repository.
func NewMongoIdentityRepository(collection *mongo.Collection) *MongoIdentityRepository {
	return &MongoIdentityRepository{collection: collection}
}

func (r *MongoIdentityRepository) FindByPhone(ctx context.Context, phone string) (*models.VerifiedIdentity, error) {
	var identity models.VerifiedIdentity
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&identity)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *MongoIdentityRepository) Create(ctx context.Context, identity *models.VerifiedIdentity) error {
	_, err := r.collection.InsertOne(ctx, identity)
	return err
}

// MemoryIdentityRepository is the in-process identity store.
type MemoryIdentityRepository struct {
	mu         sync.RWMutex
	identities map[string]models.VerifiedIdentity
}

// NewMemoryIdentityRepository creates an empty in-memory identity store.
func NewMemoryIdentityRepository() *MemoryIdentityRepository {
	return &MemoryIdentityRepository{identities: map[string]models.VerifiedIdentity{}}
}

func (r *MemoryIdentityRepository) FindByPhone(ctx context.Context, phone string) (*models.VerifiedIdentity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, exists := r.identities[phone]
	if !exists {
		return nil, ErrNotFound
	}
	return &identity, nil
}

func (r *MemoryIdentityRepository) Create(ctx context.Context, identity *models.VerifiedIdentity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.identities[identity.Phone] = *identity
	return nil
}
