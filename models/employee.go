package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName     string             `bson:"first_name" json:"first_name"`
	LastName      string             `bson:"last_name" json:"last_name"`
	Email         string             `bson:"email" json:"email"`
	Position      string             `bson:"position" json:"position"`
	Salary        float64            `bson:"salary" json:"salary"`
	DateOfJoining time.Time          `bson:"date_of_joining" json:"date_of_joining"`
	Department    string             `bson:"department" json:"department"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// EmployeeSummary is the shape returned by the employee listing.
type EmployeeSummary struct {
	EmployeeID    primitive.ObjectID `json:"employee_id"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Email         string             `json:"email"`
	Position      string             `json:"position"`
	Salary        float64            `json:"salary"`
	DateOfJoining time.Time          `json:"date_of_joining"`
	Department    string             `json:"department"`
}

func (e Employee) Summary() EmployeeSummary {
	return EmployeeSummary{
		EmployeeID:    e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Position:      e.Position,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining,
		Department:    e.Department,
	}
}
