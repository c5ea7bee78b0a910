package utils

import (
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// IntentCreator creates a processor-side payment intent and returns its
// client secret for client-side confirmation.
type IntentCreator interface {
	CreatePaymentIntent(amountCents int64) (string, error)
}

// StripeService implements IntentCreator against the Stripe API.
type StripeService struct{}

// NewStripeService sets the Stripe API key and returns the service.
func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{}
}

// CreatePaymentIntent creates a card-only USD intent for the amount in
// minor units.
func (s *StripeService) CreatePaymentIntent(amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
