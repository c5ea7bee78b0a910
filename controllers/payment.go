package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/store"
	"restaurant-api/utils"
)

// PaymentController handles checkout-related requests
type PaymentController struct {
	Store        store.PaymentStore
	Intents      utils.IntentCreator
	EmailService *utils.EmailService
}

// NewPaymentController creates a new PaymentController. EmailService
// may be nil to disable receipts.
func NewPaymentController(s store.PaymentStore, intents utils.IntentCreator, emailService *utils.EmailService) *PaymentController {
	return &PaymentController{
		Store:        s,
		Intents:      intents,
		EmailService: emailService,
	}
}

// CreatePaymentIntent creates a card-only USD intent for the supplied
// price and returns the client secret for client-side confirmation.
func (pc *PaymentController) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price float64 `json:"price"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil || body.Price <= 0 {
		http.Error(w, "Invalid price", http.StatusBadRequest)
		return
	}

	// minor units, truncated
	amount := int64(body.Price * 100)

	clientSecret, err := pc.Intents.CreatePaymentIntent(amount)
	if err != nil {
		logrus.WithError(err).Error("creating payment intent")
		http.Error(w, "Error creating payment intent", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"clientSecret": clientSecret})
}

// RecordPayment inserts the payment record and purges the cart entries
// it paid for, returning both operation results.
func (pc *PaymentController) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	err := json.NewDecoder(r.Body).Decode(&payment)
	if err != nil || payment.Email == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := pc.Store.Record(ctx, payment)
	if err != nil {
		logrus.WithError(err).Error("recording payment")
		http.Error(w, "Error recording payment", http.StatusInternalServerError)
		return
	}

	if pc.EmailService != nil {
		if err := pc.EmailService.SendPaymentReceipt(payment.Email, payment); err != nil {
			logrus.WithError(err).Warn("sending payment receipt")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"insertedId":   result.InsertedID.Hex(),
		"deletedCount": result.PurgedCarts,
	})
}

// PaymentHistory lists the caller's own payment records. The path
// email must match the token email.
func (pc *PaymentController) PaymentHistory(w http.ResponseWriter, r *http.Request) {
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

	payments, err := pc.Store.ListByEmail(ctx, email)
	if err != nil {
		logrus.WithError(err).Error("fetching payment history")
		http.Error(w, "Error fetching payment history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}
