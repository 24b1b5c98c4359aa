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

type MongoEmployeeStore struct {
	collection *mongo.Collection
}

func NewMongoEmployeeStore(database *mongo.Database, collection string) *MongoEmployeeStore {
	return &MongoEmployeeStore{collection: database.Collection(collection)}
}

func (s *MongoEmployeeStore) List(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding employees: %w", err)
	}
	defer cursor.Close(ctx)

	employees := []models.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("error decoding employees: %w", err)
	}
	return employees, nil
}

func (s *MongoEmployeeStore) Create(ctx context.Context, employee *models.Employee) error {
	timestamp := now()
	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}
	employee.CreatedAt = timestamp
	employee.UpdatedAt = timestamp

	if _, err := s.collection.InsertOne(ctx, employee); err != nil {
		return fmt.Errorf("error inserting employee: %w", err)
	}
	return nil
}

func (s *MongoEmployeeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding employee %s: %w", id.Hex(), err)
	}
	return &employee, nil
}

// Update applies the non-nil fields of update with $set and returns the
// document as it is after the write.
func (s *MongoEmployeeStore) Update(ctx context.Context, id primitive.ObjectID, update models.EmployeeUpdate) (*models.Employee, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var employee models.Employee
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updateFields(update)}, opts).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating employee %s: %w", id.Hex(), err)
	}
	return &employee, nil
}

func (s *MongoEmployeeStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting employee %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func updateFields(update models.EmployeeUpdate) bson.M {
	set := bson.M{"updated_at": now()}
	if update.FirstName != nil {
		set["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		set["last_name"] = *update.LastName
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Position != nil {
		set["position"] = *update.Position
	}
	if update.Salary != nil {
		set["salary"] = *update.Salary
	}
	if update.DateOfJoining != nil {
		set["date_of_joining"] = *update.DateOfJoining
	}
	if update.Department != nil {
		set["department"] = *update.Department
	}
	return set
}
