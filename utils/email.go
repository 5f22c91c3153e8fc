// utils/email.go
package utils

import (
	"fmt"
	"os"

	"flowerhub/models"

	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService handles sending emails using SendGrid. All sends are
// best-effort: callers log failures and move on.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance.
// With no SENDGRID_API_KEY configured the service is disabled and every
// send is a logged no-op.
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		Logger.Warn("SENDGRID_API_KEY not set, emails disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		Logger.Infow("email disabled, skipping send", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail("FlowerHub", es.sender)
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

// SendWelcomeEmail greets a newly signed-up user.
func (es *EmailService) SendWelcomeEmail(toEmail, name string) error {
	subject := "Welcome to FlowerHub"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Welcome to FlowerHub! Your account has been created and you can start shopping right away.<br><br>Happy browsing!",
		name,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendOrderConfirmationEmail sends an order confirmation email to the user
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Dear Customer,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully.<br><br>Total Amount: <strong>$%.2f</strong><br>Status: <strong>%s</strong><br><br>Thank you for shopping with us!",
		order.ID,
		order.Total,
		order.Status,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
