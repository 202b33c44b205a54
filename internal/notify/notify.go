// Package notify tells an organizer's webhook about saved RSVPs.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Notification is the JSON body posted after a household saves its RSVP.
type Notification struct {
	EventID       string    `json:"eventId"`
	EventTitle    string    `json:"eventTitle"`
	HouseholdID   string    `json:"householdId"`
	HouseholdName string    `json:"householdName"`
	Attendance    int       `json:"attendanceRecords"`
	Answers       int       `json:"answerRecords"`
	Dropped       int       `json:"droppedAnswers"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// Webhook posts notifications to a fixed URL.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook returns nil when url is empty so callers can skip notifying.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	if url == "" {
		return nil
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (w *Webhook) Notify(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}
