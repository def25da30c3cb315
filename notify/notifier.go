package notify

import (
	"fmt"
	"log"
	"strings"

	"lexassist-backend/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an outbound notification message.
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
}

// Sender delivers a single email message.
type Sender interface {
	Send(email *Email) error
}

// Notifier dispatches notification email. Delivery is best-effort:
// failures are logged, never surfaced to the HTTP caller, and never
// retried. Without Resend credentials (or in test mode) it degrades to
// logging the message.
type Notifier struct {
	sender Sender
}

// New creates a notifier from configuration.
func New(cfg *config.Config) *Notifier {
	if cfg.EmailTestMode || cfg.ResendAPIKey == "" {
		if cfg.ResendAPIKey == "" && !cfg.EmailTestMode {
			log.Println("RESEND_API_KEY not set, email notifications will be logged only")
		}
		return &Notifier{sender: &logSender{}}
	}
	return &Notifier{sender: &resendSender{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
	}}
}

// NewWithSender creates a notifier with a custom sender.
func NewWithSender(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Send delivers the email synchronously. The error is logged and
// swallowed; callers never observe delivery failure.
func (n *Notifier) Send(email *Email) {
	if err := n.sender.Send(email); err != nil {
		log.Printf("Failed to send notification %q to %v: %v", email.Subject, email.To, err)
	}
}

// SendAsync delivers the email in a background goroutine, decoupled
// from request completion.
func (n *Notifier) SendAsync(email *Email) {
	copied := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
	}
	go n.Send(copied)
}

// resendSender delivers through the Resend API.
type resendSender struct {
	client *resend.Client
	from   string
}

func (s *resendSender) Send(email *Email) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	log.Printf("Email sent via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logSender logs the message instead of delivering it.
type logSender struct{}

func (s *logSender) Send(email *Email) error {
	separator := strings.Repeat("=", 60)
	log.Printf("\n%s\nEMAIL (not sent)\nTo: %v\nSubject: %s\n%s\n%s", separator, email.To, email.Subject, email.HTMLBody, separator)
	return nil
}
