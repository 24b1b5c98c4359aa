package store

import (
	"context"
	"errors"
	"time"

	"employee-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// UserStore persists credential records.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// EmployeeStore persists employee records. Every method touches a single
// document except List.
type EmployeeStore interface {
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.EmployeeUpdate) (*models.Employee, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BSON dates carry millisecond precision.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
