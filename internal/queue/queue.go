// internal/queue/queue.go
package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/davquint/callcampaign-backend/internal/model"
)

// TopicStatusEvents carries one message per campaign status transition.
const TopicStatusEvents = "campaign_status_events"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is a production-ready in-memory queue with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartStatusEventSubscriber logs every status transition going through
// the in-memory queue. With AMQP configured the worker binary consumes
// the same topic instead.
func StartStatusEventSubscriber(q Queue) {
    go func() {
        err := q.Subscribe(TopicStatusEvents, func(payload any) error {
            ev, ok := payload.(model.StatusEvent)
            if !ok {
                log.Println("⚠️ Invalid payload type, expected model.StatusEvent")
                return nil // or return error to trigger retry
            }

            log.Printf("📩 Campaign %s (%s): %s → %s at %s\n", ev.CampaignName, ev.CampaignID, ev.From, ev.To, ev.At)
            return nil
        })

        if err != nil {
            log.Println("⚠️ Failed to start subscriber for", TopicStatusEvents, ":", err)
        }
    }()
}
