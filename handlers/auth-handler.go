package handlers

import (
	"errors"
	"log"
	"net/http"

	"employee-service/middleware"
	"employee-service/models"
	"employee-service/store"
	"employee-service/utils"
	"employee-service/validation"
)

var (
	hashPassword  = utils.HashPassword
	checkPassword = utils.CheckPassword
)

type AuthHandler struct {
	users     store.UserStore
	validator *validation.Validator
}

func NewAuthHandler(users store.UserStore, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{users: users, validator: validator}
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6,maxbytes=72"`
}

var signupMessages = map[string]string{
	"username":          "Username is required",
	"email":             "Valid email is required",
	"password":          "Password must be at least 6 characters long",
	"password.maxbytes": "Password must be at most 72 bytes long",
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"email":    "Valid email is required",
	"password": "Password is required",
}

func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) error {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if err := h.validate(req, signupMessages); err != nil {
		return err
	}

	_, err := h.users.FindByEmail(r.Context(), req.Email)
	if err == nil {
		return middleware.NewConflictError("User already exists", nil)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return middleware.NewInternalError(err)
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.NewInternalError(err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return middleware.NewConflictError("User already exists", err)
		}
		return middleware.NewInternalError(err)
	}

	return middleware.WriteJSON(w, http.StatusCreated, JSONResponse{"message": "User created successfully"})
}

// LoginHandler verifies credentials only; no session or token is issued.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if err := h.validate(req, loginMessages); err != nil {
		return err
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.NewAuthenticationError(err)
		}
		return middleware.NewInternalError(err)
	}

	if err := checkPassword(user.Password, req.Password); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			return middleware.NewAuthenticationError(err)
		}
		return middleware.NewInternalError(err)
	}

	return middleware.WriteJSON(w, http.StatusOK, JSONResponse{"message": "Login successful"})
}

func (h *AuthHandler) validate(req any, messages map[string]string) error {
	fields, err := h.validator.Struct(req, messages)
	if err != nil {
		return middleware.NewInternalError(err)
	}
	if len(fields) > 0 {
		return middleware.NewValidationError("Validation failed", fields)
	}
	return nil
}
