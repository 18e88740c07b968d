package utils

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is a global variable holding the MongoDB client
var MongoClient *mongo.Client

// InitMongoClient initializes the MongoDB client from the environment
func InitMongoClient() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MongoDB URI is not set")
	}

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetMaxPoolSize(GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100)).
		SetMinPoolSize(GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10))

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	MongoClient = client
}
