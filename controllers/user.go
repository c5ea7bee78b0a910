package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/store"
	"restaurant-api/utils"
)

// UserController handles user-related requests
type UserController struct {
	Store store.UserStore
}

// NewUserController creates a new UserController
func NewUserController(s store.UserStore) *UserController {
	return &UserController{Store: s}
}

// IssueToken signs a bearer token for the supplied email
func (uc *UserController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil || body.Email == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	token, err := utils.GenerateJWT(body.Email)
	if err != nil {
		logrus.WithError(err).Error("signing token")
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Register creates the user on first login. Registering an existing
// email returns the null-insertedId sentinel the storefront keys on.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil || user.Email == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err = uc.Store.FindByEmail(ctx, user.Email)
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":    "user already exist",
			"insertedId": nil,
		})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		logrus.WithError(err).Error("checking user")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	id, err := uc.Store.Insert(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("creating user")
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"insertedId": id.Hex()})
}

// ListUsers retrieves all users (Admin only)
func (uc *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	users, err := uc.Store.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("listing users")
		http.Error(w, "Error fetching users", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// CheckAdmin reports whether the caller's own email holds the admin
// role. The path email must match the token email.
func (uc *UserController) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	email := mux.Vars(r)["email"]
	if email != claims.Email {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	admin := false
	user, err := uc.Store.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logrus.WithError(err).Error("fetching user")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if user != nil {
		admin = user.Role.IsAdmin()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"admin": admin})
}

// PromoteToAdmin sets a user's role to Admin (Admin only)
func (uc *UserController) PromoteToAdmin(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	matched, err := uc.Store.PromoteToAdmin(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("promoting user")
		http.Error(w, "Error promoting user", http.StatusInternalServerError)
		return
	}
	if matched == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"matchedCount": matched})
}

// DeleteUser removes a user by ID (Admin only)
func (uc *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := uc.Store.Delete(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("deleting user")
		http.Error(w, "Error deleting user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"deletedCount": deleted})
}
