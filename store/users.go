package store

import (
	"context"
	"errors"
	"fmt"

	"employee-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserStore struct {
	collection *mongo.Collection
}

func NewMongoUserStore(database *mongo.Database, collection string) *MongoUserStore {
	return &MongoUserStore{collection: database.Collection(collection)}
}

// EnsureIndexes creates the unique indexes on username and email.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("error creating user indexes: %w", err)
	}
	return nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return &user, nil
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	timestamp := now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = timestamp
	user.UpdatedAt = timestamp

	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("error inserting user: %w", ErrDuplicate)
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}
