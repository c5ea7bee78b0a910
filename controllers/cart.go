package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-api/models"
	"restaurant-api/store"
)

// CartController handles cart-related requests
type CartController struct {
	Store store.CartStore
}

// NewCartController creates a new CartController
func NewCartController(s store.CartStore) *CartController {
	return &CartController{Store: s}
}

// GetCart retrieves all cart entries for the email query parameter.
// Entries are keyed by client-supplied email; the storefront fills the
// cart before login.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email query parameter required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entries, err := cc.Store.ListByEmail(ctx, email)
	if err != nil {
		logrus.WithError(err).Error("listing cart")
		http.Error(w, "Error fetching cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// AddToCart adds a menu item to a cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var entry models.CartEntry
	err := json.NewDecoder(r.Body).Decode(&entry)
	if err != nil || entry.Email == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := cc.Store.Insert(ctx, entry)
	if err != nil {
		logrus.WithError(err).Error("adding cart entry")
		http.Error(w, "Error adding cart entry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"insertedId": id.Hex()})
}

// RemoveFromCart removes one cart entry by id
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid cart entry ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := cc.Store.Delete(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("removing cart entry")
		http.Error(w, "Error removing cart entry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"deletedCount": deleted})
}
