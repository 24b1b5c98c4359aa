package routes

import (
	"net/http"

	"employee-service/handlers"
	"employee-service/middleware"

	"github.com/gorilla/mux"
)

func SetupRoutes(authHandler *handlers.AuthHandler, employeeHandler *handlers.EmployeeHandler, healthHandler http.Handler) *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Handle("/health", healthHandler).Methods(http.MethodGet)

	user := api.PathPrefix("/user").Subrouter()
	user.HandleFunc("/signup", middleware.ErrorHandler(authHandler.SignupHandler)).Methods(http.MethodPost)
	user.HandleFunc("/login", middleware.ErrorHandler(authHandler.LoginHandler)).Methods(http.MethodPost)

	emp := api.PathPrefix("/emp").Subrouter()
	emp.HandleFunc("/employees", middleware.ErrorHandler(employeeHandler.ListHandler)).Methods(http.MethodGet)
	emp.HandleFunc("/employees", middleware.ErrorHandler(employeeHandler.CreateHandler)).Methods(http.MethodPost)
	emp.HandleFunc("/employees/{id}", middleware.ErrorHandler(employeeHandler.GetHandler)).Methods(http.MethodGet)
	emp.HandleFunc("/employees/{id}", middleware.ErrorHandler(employeeHandler.UpdateHandler)).Methods(http.MethodPut)
	emp.HandleFunc("/employees/{id}", middleware.ErrorHandler(employeeHandler.DeleteHandler)).Methods(http.MethodDelete)

	return router
}
