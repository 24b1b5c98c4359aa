package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"employee-service/handlers"
	"employee-service/models"
	"employee-service/routes"
	"employee-service/store"
	"employee-service/validation"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type emptyUserStore struct{}

func (emptyUserStore) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, store.ErrNotFound
}

func (emptyUserStore) Create(context.Context, *models.User) error {
	return nil
}

type emptyEmployeeStore struct{}

func (emptyEmployeeStore) List(context.Context) ([]models.Employee, error) {
	return []models.Employee{}, nil
}

func (emptyEmployeeStore) Create(context.Context, *models.Employee) error {
	return nil
}

func (emptyEmployeeStore) FindByID(context.Context, primitive.ObjectID) (*models.Employee, error) {
	return nil, store.ErrNotFound
}

func (emptyEmployeeStore) Update(context.Context, primitive.ObjectID, models.EmployeeUpdate) (*models.Employee, error) {
	return nil, store.ErrNotFound
}

func (emptyEmployeeStore) Delete(context.Context, primitive.ObjectID) error {
	return store.ErrNotFound
}

func newRouter() *mux.Router {
	v := validation.New()
	health := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return routes.SetupRoutes(
		handlers.NewAuthHandler(emptyUserStore{}, v),
		handlers.NewEmployeeHandler(emptyEmployeeStore{}, v),
		health,
	)
}

func TestSetupRoutes(t *testing.T) {
	router := newRouter()
	assert.IsType(t, &mux.Router{}, router)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/user/signup"},
		{http.MethodPost, "/api/v1/user/login"},
		{http.MethodGet, "/api/v1/emp/employees"},
		{http.MethodPost, "/api/v1/emp/employees"},
		{http.MethodGet, "/api/v1/emp/employees/abc"},
		{http.MethodPut, "/api/v1/emp/employees/abc"},
		{http.MethodDelete, "/api/v1/emp/employees/abc"},
		{http.MethodGet, "/api/v1/health"},
	}

	for _, tt := range tests {
		req, _ := http.NewRequest(tt.method, tt.path, nil)
		match := &mux.RouteMatch{}
		assert.True(t, router.Match(req, match), "Route %s %s not registered", tt.method, tt.path)
	}
}

func TestRoutesPassPathVariables(t *testing.T) {
	router := newRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/emp/employees/not-an-id", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid employee ID")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/emp/employees/"+primitive.NewObjectID().Hex(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutesRejectUnknownMethod(t *testing.T) {
	router := newRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/emp/employees", strings.NewReader("{}")))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
