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

	"restaurant-api/models"
	"restaurant-api/store"
)

// MenuController handles menu-related requests
type MenuController struct {
	Store store.MenuStore
}

// NewMenuController creates a new MenuController
func NewMenuController(s store.MenuStore) *MenuController {
	return &MenuController{Store: s}
}

// GetMenu retrieves all menu items
func (mc *MenuController) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	items, err := mc.Store.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("listing menu")
		http.Error(w, "Error fetching menu", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// CreateMenuItem handles adding a new menu item (Admin only)
func (mc *MenuController) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	err := json.NewDecoder(r.Body).Decode(&item)
	if err != nil || item.Name == "" || item.Price < 0 {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := mc.Store.Insert(ctx, item)
	if err != nil {
		logrus.WithError(err).Error("creating menu item")
		http.Error(w, "Error creating menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"insertedId": id.Hex()})
}

// GetMenuItem retrieves a single menu item by ID
func (mc *MenuController) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid menu item ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := mc.Store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logrus.WithError(err).Error("fetching menu item")
		http.Error(w, "Error fetching menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// UpdateMenuItem handles partial updates of a menu item (Admin only)
func (mc *MenuController) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid menu item ID", http.StatusBadRequest)
		return
	}

	var fields models.MenuItemUpdate
	err = json.NewDecoder(r.Body).Decode(&fields)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	matched, err := mc.Store.Update(ctx, id, fields)
	if err != nil {
		logrus.WithError(err).Error("updating menu item")
		http.Error(w, "Error updating menu item", http.StatusInternalServerError)
		return
	}
	if matched == 0 {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"matchedCount": matched})
}

// DeleteMenuItem handles deleting a menu item (Admin only).
// Deleting an absent item is a silent no-op.
func (mc *MenuController) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid menu item ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := mc.Store.Delete(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("deleting menu item")
		http.Error(w, "Error deleting menu item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"deletedCount": deleted})
}
