package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"employee-service/middleware"
	"employee-service/models"
	"employee-service/store"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryUserStore struct {
	mu        sync.Mutex
	users     map[string]models.User
	findErr   error
	createErr error
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]models.User)}
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	user, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *memoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.users[user.Email]; exists {
		return store.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	s.users[user.Email] = *user
	return nil
}

type memoryEmployeeStore struct {
	mu        sync.Mutex
	employees map[primitive.ObjectID]models.Employee
	order     []primitive.ObjectID
	clock     time.Time
	err       error
}

func newMemoryEmployeeStore() *memoryEmployeeStore {
	return &memoryEmployeeStore{
		employees: make(map[primitive.ObjectID]models.Employee),
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memoryEmployeeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memoryEmployeeStore) List(_ context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	employees := []models.Employee{}
	for _, id := range s.order {
		if employee, ok := s.employees[id]; ok {
			employees = append(employees, employee)
		}
	}
	return employees, nil
}

func (s *memoryEmployeeStore) Create(_ context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	employee.ID = primitive.NewObjectID()
	employee.CreatedAt = s.tick()
	employee.UpdatedAt = employee.CreatedAt
	s.employees[employee.ID] = *employee
	s.order = append(s.order, employee.ID)
	return nil
}

func (s *memoryEmployeeStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	employee, ok := s.employees[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &employee, nil
}

func (s *memoryEmployeeStore) Update(_ context.Context, id primitive.ObjectID, update models.EmployeeUpdate) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	employee, ok := s.employees[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	update.ApplyTo(&employee)
	employee.UpdatedAt = s.tick()
	s.employees[id] = employee
	return &employee, nil
}

func (s *memoryEmployeeStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.employees[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.employees, id)
	return nil
}

func (s *memoryEmployeeStore) only() models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, employee := range s.employees {
		return employee
	}
	return models.Employee{}
}

func executeRequest(handler middleware.AppHandler, method, target, body string, vars map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rec := httptest.NewRecorder()
	middleware.ErrorHandler(handler).ServeHTTP(rec, req)
	return rec
}
