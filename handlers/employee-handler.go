package handlers

import (
	"errors"
	"net/http"

	"employee-service/middleware"
	"employee-service/models"
	"employee-service/store"
	"employee-service/validation"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const invalidEmployeeIDMessage = "Invalid employee ID"

var employeeRules = []validation.Rule{
	{Field: "first_name", Tag: "text,required", Message: "First name is required"},
	{Field: "last_name", Tag: "text,required", Message: "Last name is required"},
	{Field: "email", Tag: "required,email", Message: "Valid email is required"},
	{Field: "position", Tag: "text,required", Message: "Position is required"},
	{Field: "salary", Tag: "finitenumber", Message: "Salary must be a number"},
	{Field: "date_of_joining", Tag: "iso8601", Message: "Valid date is required"},
	{Field: "department", Tag: "text,required", Message: "Department is required"},
}

type EmployeeHandler struct {
	employees store.EmployeeStore
	validator *validation.Validator
}

func NewEmployeeHandler(employees store.EmployeeStore, validator *validation.Validator) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, validator: validator}
}

func (h *EmployeeHandler) ListHandler(w http.ResponseWriter, r *http.Request) error {
	employees, err := h.employees.List(r.Context())
	if err != nil {
		return middleware.NewInternalError(err)
	}

	summaries := make([]models.EmployeeSummary, 0, len(employees))
	for _, employee := range employees {
		summaries = append(summaries, employee.Summary())
	}
	return middleware.WriteJSON(w, http.StatusOK, summaries)
}

func (h *EmployeeHandler) CreateHandler(w http.ResponseWriter, r *http.Request) error {
	input, err := h.decodeFields(r, false)
	if err != nil {
		return err
	}

	var employee models.Employee
	fieldUpdate(input).ApplyTo(&employee)
	if err := h.employees.Create(r.Context(), &employee); err != nil {
		return middleware.NewInternalError(err)
	}

	return middleware.WriteJSON(w, http.StatusCreated, JSONResponse{"message": "Employee created successfully"})
}

func (h *EmployeeHandler) GetHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := employeeID(r)
	if err != nil {
		return err
	}

	employee, err := h.employees.FindByID(r.Context(), id)
	if err != nil {
		return storeError(err)
	}
	return middleware.WriteJSON(w, http.StatusOK, employee)
}

// UpdateHandler overwrites only the fields present in the body.
func (h *EmployeeHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := employeeID(r)
	if err != nil {
		return err
	}

	input, err := h.decodeFields(r, true)
	if err != nil {
		return err
	}

	employee, err := h.employees.Update(r.Context(), id, fieldUpdate(input))
	if err != nil {
		return storeError(err)
	}

	return middleware.WriteJSON(w, http.StatusOK, JSONResponse{
		"message":  "Employee updated successfully",
		"employee": employee,
	})
}

func (h *EmployeeHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := employeeID(r)
	if err != nil {
		return err
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		return storeError(err)
	}
	return middleware.WriteJSON(w, http.StatusOK, JSONResponse{"message": "Employee deleted successfully"})
}

func (h *EmployeeHandler) decodeFields(r *http.Request, partial bool) (map[string]any, error) {
	input := map[string]any{}
	if err := decodeJSON(r, &input); err != nil {
		return nil, err
	}
	if input == nil {
		input = map[string]any{}
	}

	if fields := h.validator.Fields(input, employeeRules, partial); len(fields) > 0 {
		return nil, middleware.NewValidationError("Validation failed", fields)
	}
	return input, nil
}

// fieldUpdate converts validated input into a change set.
func fieldUpdate(input map[string]any) models.EmployeeUpdate {
	text := func(key string) *string {
		if value, ok := input[key].(string); ok {
			return &value
		}
		return nil
	}

	update := models.EmployeeUpdate{
		FirstName:  text("first_name"),
		LastName:   text("last_name"),
		Email:      text("email"),
		Position:   text("position"),
		Department: text("department"),
	}
	if salary, ok := validation.ParseNumber(input["salary"]); ok {
		update.Salary = &salary
	}
	if raw, ok := input["date_of_joining"].(string); ok {
		if joined, err := validation.ParseDate(raw); err == nil {
			update.DateOfJoining = &joined
		}
	}
	return update
}

func employeeID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		return primitive.NilObjectID, middleware.NewValidationError(invalidEmployeeIDMessage, []validation.FieldError{
			{Field: "id", Message: invalidEmployeeIDMessage},
		})
	}
	return id, nil
}

func storeError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return middleware.NewNotFoundError("Employee not found", err)
	}
	return middleware.NewInternalError(err)
}
