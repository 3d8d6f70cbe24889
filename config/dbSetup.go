package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection     *mongo.Collection
	PropertyCollection *mongo.Collection
	ExpertCollection   *mongo.Collection
)

func ConnectDB() (*mongo.Client, error) {
	MONGO_URI := os.Getenv("MONGOURI")
	if MONGO_URI == "" {
		return nil, fmt.Errorf("MONGOURI not set in environment")
	}

	clientOptions := options.Client().ApplyURI(MONGO_URI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

func InitCollections(client *mongo.Client) {
	dbName := os.Getenv("DB")
	UserCollection = client.Database(dbName).Collection("users")
	PropertyCollection = client.Database(dbName).Collection("properties")
	ExpertCollection = client.Database(dbName).Collection("experts")
}

// EnsureIndexes creates the unique indexes the registration and directory
// endpoints rely on for their duplicate checks.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "contact", Value: 1}}, Options: unique},
	}
	if _, err := UserCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("creating user indexes: %v", err)
	}

	expertIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "contact", Value: 1}}, Options: unique},
	}
	if _, err := ExpertCollection.Indexes().CreateMany(ctx, expertIndexes); err != nil {
		return fmt.Errorf("creating expert indexes: %v", err)
	}
	return nil
}

func CloseDBConnection(client *mongo.Client) {
	if err := client.Disconnect(context.TODO()); err != nil {
		log.Fatalf("Error closing database connection: %v", err)
	}
	log.Println("MongoDB connection closed")
}
