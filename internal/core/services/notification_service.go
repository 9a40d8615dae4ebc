package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"univ-biblio/internal/adapters/persistence/models"
)

// NotificationService pushes reminder messages to a configured webhook
// (e.g. a Slack/Discord incoming webhook). Disabled when no webhook URL
// is configured, so the sweep can run without a receiver.
type NotificationService struct {
	webhookURL string
	client     *http.Client
	enabled    bool
}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	url := os.Getenv("REMINDER_WEBHOOK_URL")
	return &NotificationService{
		webhookURL: url,
		client:     &http.Client{Timeout: 10 * time.Second},
		enabled:    url != "",
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

func (s *NotificationService) push(message string) error {
	if !s.enabled {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return err
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// NotifyOverdueLoan sends a reminder for a single overdue loan
func (s *NotificationService) NotifyOverdueLoan(loan *models.Loan) error {
	title := fmt.Sprintf("book #%d", loan.BookID)
	if loan.Book != nil {
		title = fmt.Sprintf("%q by %s", loan.Book.Title, loan.Book.Author)
	}

	who := fmt.Sprintf("user #%d", loan.UserID)
	if loan.User != nil {
		who = fmt.Sprintf("%s %s <%s>", loan.User.FirstName, loan.User.LastName, loan.User.Email)
	}

	message := fmt.Sprintf(
		"📚 Overdue loan: %s borrowed by %s was due %s",
		title,
		who,
		loan.DueDate.Format("2006-01-02"),
	)
	return s.push(message)
}

// NotifyOverdueSummary sends the daily sweep summary
func (s *NotificationService) NotifyOverdueSummary(count int) error {
	if count == 0 {
		return nil
	}
	return s.push(fmt.Sprintf("📚 Daily sweep: %d loan(s) overdue", count))
}
