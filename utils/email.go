// utils/email.go
package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"restaurant-api/models"
)

// EmailService sends transactional mail through SendGrid. A nil
// service disables mail entirely.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService returns an EmailService, or nil when no API key is
// configured.
func NewEmailService(apiKey, sender string) *EmailService {
	if apiKey == "" {
		logrus.Info("SENDGRID_API_KEY not set, email receipts disabled")
		return nil
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	from := mail.NewEmail("", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendPaymentReceipt sends a receipt email after a recorded payment.
func (es *EmailService) SendPaymentReceipt(toEmail string, payment models.Payment) error {
	subject := "Payment Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Dear Customer,</strong><br><br>Thank you for your order! Your payment of <strong>$%.2f</strong> (transaction %s) has been received and your order is being prepared.<br><br>Thank you for dining with us!",
		payment.Price,
		payment.TransactionID,
	)

	return es.SendEmail(toEmail, subject, htmlContent)
}
