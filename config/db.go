package config

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	db   *mongo.Database
	once sync.Once
)

// ConnectDB initializes the MongoDB connection. It returns nil when
// MONGODB_URI is unset or the server is unreachable; the caller falls back
// to the in-memory repositories in that case.
func ConnectDB() *mongo.Database {
	once.Do(func() {
		mongoURI := os.Getenv("MONGODB_URI")
		if mongoURI == "" {
			log.Println("MONGODB_URI not set, running with in-memory storage")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			log.Printf("Failed to create MongoDB client: %v", err)
			return
		}

		if err := client.Ping(ctx, nil); err != nil {
			log.Printf("Failed to reach MongoDB: %v", err)
			return
		}

		log.Println("Connected to MongoDB!")
		db = client.Database("nagarseva")
	})

	return db
}

// GetCollection returns a MongoDB collection by name, or nil when no
// database connection is available.
func GetCollection(name string) *mongo.Collection {
	database := ConnectDB()
	if database == nil {
		return nil
	}
	return database.Collection(name)
}
