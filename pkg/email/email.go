package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService sends receipt copies and financial reports over SMTP.
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendReceiptCopy sends an HTML rendering of the receipt to the customer.
// The rendering is marked as a copy; it never stands in for the original.
func (s *EmailService) SendReceiptCopy(toEmail string, receipt *entity.Receipt) error {
	htmlContent, err := s.renderReceipt(receipt)
	if err != nil {
		return fmt.Errorf("failed to render receipt template: %w", err)
	}

	subject := fmt.Sprintf("Your receipt from %s", receipt.RestaurantName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// SendReport sends an HTML rendering of an X or Z report to the restaurant.
func (s *EmailService) SendReport(toEmail string, report *entity.Report) error {
	htmlContent, err := s.renderReport(report)
	if err != nil {
		return fmt.Errorf("failed to render report template: %w", err)
	}

	subject := fmt.Sprintf("%s report for %s", report.ReportType, report.Name)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func (s *EmailService) renderReceipt(receipt *entity.Receipt) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, receipt); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *EmailService) renderReport(report *entity.Report) (string, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}
