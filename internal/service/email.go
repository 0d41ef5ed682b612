package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"toolshare-backend/internal/utils"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendCancellationRequested(ctx context.Context, ownerEmail, renterName, toolName string) error {
	subject := fmt.Sprintf("Cancellation requested for %s", toolName)
	body := fmt.Sprintf("Hello,\n\n%s has asked to cancel their rental of %s. Please review and approve the cancellation in ToolShare.\n\nBest regards,\nThe ToolShare Team", renterName, toolName)
	return s.Send(ctx, ownerEmail, "", subject, body)
}

func (s *emailService) SendCancellationApproved(ctx context.Context, renterEmail, toolName string, refundCents int64) error {
	subject := fmt.Sprintf("Cancellation approved for %s", toolName)
	body := fmt.Sprintf("Hello,\n\nYour cancellation of %s was approved. A refund of %s is on its way back to your original payment method.\n\nBest regards,\nThe ToolShare Team", toolName, utils.FormatCents(refundCents))
	return s.Send(ctx, renterEmail, "", subject, body)
}

func (s *emailService) SendDepositReturned(ctx context.Context, renterEmail, toolName string, depositCents int64) error {
	subject := fmt.Sprintf("Deposit refunded for %s", toolName)
	body := fmt.Sprintf("Hello,\n\nThe owner confirmed the return of %s. Your deposit of %s has been refunded.\n\nBest regards,\nThe ToolShare Team", toolName, utils.FormatCents(depositCents))
	return s.Send(ctx, renterEmail, "", subject, body)
}

func (s *emailService) SendStartReminder(ctx context.Context, email, name, toolName, startDate, role string) error {
	var subject, body string
	if role == "owner" {
		subject = fmt.Sprintf("Reminder: %s is picked up tomorrow", toolName)
		body = fmt.Sprintf("Hello %s,\n\nA rental of your tool %s starts on %s. Please have it ready for pickup.\n\nBest regards,\nThe ToolShare Team", name, toolName, startDate)
	} else {
		subject = fmt.Sprintf("Reminder: your rental of %s starts tomorrow", toolName)
		body = fmt.Sprintf("Hello %s,\n\nYour rental of %s starts on %s. Don't forget to pick it up.\n\nBest regards,\nThe ToolShare Team", name, toolName, startDate)
	}
	return s.Send(ctx, email, name, subject, body)
}
