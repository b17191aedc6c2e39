package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

// emailService sends notifications through SendGrid. Usernames double as
// email addresses. Failures are logged by callers and never block the
// operation that triggered them.
type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendMembershipDecision(ctx context.Context, email, name, orgName string, approved bool, reason string) error {
	subject := fmt.Sprintf("Membership Update - %s", orgName)
	var body string
	if approved {
		body = fmt.Sprintf("Hello %s,\n\nYour request to join %s has been approved. You can now log commutes and earn credits for your organization.", name, orgName)
	} else {
		body = fmt.Sprintf("Hello %s,\n\nYour request to join %s has been rejected.\n\nReason: %s", name, orgName, reason)
	}
	body += "\n\nBest regards,\nThe GreenCommute Team"
	return s.send(email, name, subject, body)
}

func (s *emailService) SendOrganizationDecision(ctx context.Context, email, name, orgName string, approved bool, reason string) error {
	subject := fmt.Sprintf("Organization Review - %s", orgName)
	var body string
	if approved {
		body = fmt.Sprintf("Hello %s,\n\nYour organization %s has been approved and can now take part in the credit marketplace.", name, orgName)
	} else {
		body = fmt.Sprintf("Hello %s,\n\nYour organization %s has been rejected.\n\nReason: %s", name, orgName, reason)
	}
	body += "\n\nBest regards,\nThe GreenCommute Team"
	return s.send(email, name, subject, body)
}

func (s *emailService) SendListingSoldNotification(ctx context.Context, email, name string, credits, value decimal.Decimal) error {
	subject := "Your listing sold"
	body := fmt.Sprintf("Hello %s,\n\nYour listing of %s credits sold for %s.\n\nBest regards,\nThe GreenCommute Team", name, credits.String(), value.String())
	return s.send(email, name, subject, body)
}

func (s *emailService) SendPointsDigest(ctx context.Context, email, name, orgName string, points decimal.Decimal, commutes int) error {
	subject := fmt.Sprintf("Daily Points Digest - %s", orgName)
	body := fmt.Sprintf("Hello %s,\n\nYesterday %s logged %d commutes and earned %s credits.\n\nBest regards,\nThe GreenCommute Team", name, orgName, commutes, points.String())
	return s.send(email, name, subject, body)
}

func (s *emailService) SendMembershipReminder(ctx context.Context, email, name, orgName string, pendingCount int) error {
	subject := fmt.Sprintf("Pending Join Requests - %s", orgName)
	body := fmt.Sprintf("Hello %s,\n\n%s has %d membership requests waiting for review.\n\nBest regards,\nThe GreenCommute Team", name, orgName, pendingCount)
	return s.send(email, name, subject, body)
}
