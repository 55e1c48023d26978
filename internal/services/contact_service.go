package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/piyush5566/job-portal-go/internal/mail"
)

const (
	contactMaxAttempts = 3
	contactRetryDelay  = time.Second
)

// ContactService forwards contact-form submissions to the configured
// recipient. Delivery is retried a fixed number of times with a fixed delay;
// the caller only sees an error after every attempt failed.
type ContactService struct {
	sender    mail.Sender
	from      string
	recipient string
}

func NewContactService(sender mail.Sender, from, recipient string) *ContactService {
	return &ContactService{sender: sender, from: from, recipient: recipient}
}

func (s *ContactService) Send(req *dto.ContactRequest) error {
	subject := "Job Portal Contact: " + req.Subject
	body := fmt.Sprintf("From: %s <%s>\n\n%s", req.Name, req.Email, req.Message)

	var lastErr error
	for attempt := 1; attempt <= contactMaxAttempts; attempt++ {
		if lastErr = s.sender.Send(s.recipient, s.from, subject, body); lastErr == nil {
			slog.Info("contact email sent", "from", req.Email, "attempt", attempt)
			return nil
		}
		if attempt < contactMaxAttempts {
			slog.Warn("contact email attempt failed, retrying", "attempt", attempt, "error", lastErr)
			time.Sleep(contactRetryDelay)
		}
	}

	slog.Error("contact email failed after retries", "from", req.Email, "attempts", contactMaxAttempts, "error", lastErr)
	return fmt.Errorf("failed to send contact email after %d attempts: %w", contactMaxAttempts, lastErr)
}
