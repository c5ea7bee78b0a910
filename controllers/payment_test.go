package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-api/models"
)

func newPaymentRouter(pc *PaymentController) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/create-payment-intent", pc.CreatePaymentIntent).Methods("POST")
	router.HandleFunc("/payment", pc.RecordPayment).Methods("POST")
	router.HandleFunc("/paymentHistory/{email}", pc.PaymentHistory).Methods("GET")
	return router
}

func TestCreatePaymentIntent(t *testing.T) {
	intents := &fakeIntentCreator{secret: "pi_secret_123"}
	pc := NewPaymentController(newFakePaymentStore(newFakeCartStore()), intents, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString(`{"price":12.345}`))
	newPaymentRouter(pc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "pi_secret_123", resp["clientSecret"])
	// minor units, truncated
	assert.Equal(t, int64(1234), intents.amount)
}

func TestCreatePaymentIntent_InvalidPrice(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero", `{"price":0}`},
		{"negative", `{"price":-3}`},
		{"non-numeric", `{"price":"five"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intents := &fakeIntentCreator{secret: "pi_secret_123"}
			pc := NewPaymentController(newFakePaymentStore(newFakeCartStore()), intents, nil)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString(tt.body))
			newPaymentRouter(pc).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, intents.amount)
		})
	}
}

func TestCreatePaymentIntent_ProcessorError(t *testing.T) {
	intents := &fakeIntentCreator{err: errors.New("stripe down")}
	pc := NewPaymentController(newFakePaymentStore(newFakeCartStore()), intents, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString(`{"price":5}`))
	newPaymentRouter(pc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRecordPayment_PurgesListedCartEntries(t *testing.T) {
	cart := newFakeCartStore()
	var paid []primitive.ObjectID
	for _, name := range []string{"Tiramisu", "Margherita"} {
		id, err := cart.Insert(nil, models.CartEntry{Email: "a@x.com", Name: name})
		require.NoError(t, err)
		paid = append(paid, id)
	}
	kept, err := cart.Insert(nil, models.CartEntry{Email: "a@x.com", Name: "Carbonara"})
	require.NoError(t, err)

	payments := newFakePaymentStore(cart)
	pc := NewPaymentController(payments, &fakeIntentCreator{}, nil)

	payment := models.Payment{
		Email:         "a@x.com",
		Price:         14.5,
		TransactionID: "tx_1",
		CartIDs:       paid,
	}
	body, _ := json.Marshal(payment)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment", bytes.NewReader(body))
	newPaymentRouter(pc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.EqualValues(t, 2, resp["deletedCount"])

	// exactly the listed entries are gone
	assert.Len(t, cart.entries, 1)
	_, ok := cart.entries[kept]
	assert.True(t, ok)
	assert.Len(t, payments.payments, 1)
}

func TestRecordPayment_InvalidInput(t *testing.T) {
	pc := NewPaymentController(newFakePaymentStore(newFakeCartStore()), &fakeIntentCreator{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment", bytes.NewBufferString(`{"price":5}`))
	newPaymentRouter(pc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentHistory_SelfOnly(t *testing.T) {
	cart := newFakeCartStore()
	payments := newFakePaymentStore(cart)
	_, err := payments.Record(nil, models.Payment{Email: "a@x.com", Price: 10})
	require.NoError(t, err)
	_, err = payments.Record(nil, models.Payment{Email: "b@x.com", Price: 20})
	require.NoError(t, err)

	pc := NewPaymentController(payments, &fakeIntentCreator{}, nil)
	router := newPaymentRouter(pc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withClaims(httptest.NewRequest(http.MethodGet, "/paymentHistory/a@x.com", nil), "a@x.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Payment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].Price)
}

func TestPaymentHistory_MismatchedEmail(t *testing.T) {
	pc := NewPaymentController(newFakePaymentStore(newFakeCartStore()), &fakeIntentCreator{}, nil)

	rec := httptest.NewRecorder()
	req := withClaims(httptest.NewRequest(http.MethodGet, "/paymentHistory/a@x.com", nil), "b@x.com")
	newPaymentRouter(pc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
