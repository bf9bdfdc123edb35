// internal/service/notifier.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/aniladanir/retry"

	"github.com/davquint/callcampaign-backend/internal/model"
)

// Notifier consumes status events and pushes each one to an external
// webhook. With no webhook configured it still logs a summary line, so
// a bare deployment keeps an audit trail of transitions.
type Notifier struct {
	Events     <-chan model.StatusEvent
	WebhookURL string
	Client     *http.Client
	Retrier    *retry.Retrier
	SendFunc   func(ev model.StatusEvent) error
}

// Constructor
func NewNotifier(events <-chan model.StatusEvent, webhookURL string, maxRetries int) (*Notifier, error) {
	retrierOpts := make([]retry.Option, 0)
	if maxRetries > 0 {
		retrierOpts = append(retrierOpts, retry.WithMaxAttemps(maxRetries))
	}
	retrier, err := retry.New(retrierOpts...)
	if err != nil {
		return nil, fmt.Errorf("encountered error when initializing retrier: %w", err)
	}

	return &Notifier{
		Events:     events,
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 5 * time.Second},
		Retrier:    retrier,
	}, nil
}

// Start begins processing events
func (n *Notifier) Start() {
	for ev := range n.Events {
		summary := RenderTemplate("Campaña {name}: {from} -> {to} ({at})", map[string]string{
			"name": ev.CampaignName,
			"from": string(ev.From),
			"to":   string(ev.To),
			"at":   ev.At.String(),
		})
		log.Println("📩", summary)

		n.notify(ev)
	}
}

func (n *Notifier) notify(ev model.StatusEvent) {
	send := n.SendFunc
	if send == nil {
		if n.WebhookURL == "" {
			return
		}
		send = n.postWebhook
	}

	if n.Retrier == nil {
		if err := send(ev); err != nil {
			log.Println("⚠️ failed to deliver status event:", err)
		}
		return
	}

	retryFunc := func(attempt int) (terminate bool) {
		if err := send(ev); err != nil {
			log.Printf("⚠️ delivery attempt %d failed: %v\n", attempt, err)
			return false
		}
		return true
	}

	if ok := <-n.Retrier.Retry(context.Background(), retryFunc, true); !ok {
		log.Println("⚠️ giving up on status event for campaign", ev.CampaignID)
	}
}

func (n *Notifier) postWebhook(ev model.StatusEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, n.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
