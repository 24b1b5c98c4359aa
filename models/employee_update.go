package models

import "time"

// EmployeeUpdate carries a partial change set. Nil fields are left untouched.
type EmployeeUpdate struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Position      *string
	Salary        *float64
	DateOfJoining *time.Time
	Department    *string
}

// ApplyTo copies the provided fields onto employee.
func (u EmployeeUpdate) ApplyTo(employee *Employee) {
	if u.FirstName != nil {
		employee.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		employee.LastName = *u.LastName
	}
	if u.Email != nil {
		employee.Email = *u.Email
	}
	if u.Position != nil {
		employee.Position = *u.Position
	}
	if u.Salary != nil {
		employee.Salary = *u.Salary
	}
	if u.DateOfJoining != nil {
		employee.DateOfJoining = *u.DateOfJoining
	}
	if u.Department != nil {
		employee.Department = *u.Department
	}
}
