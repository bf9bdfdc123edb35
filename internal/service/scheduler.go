// internal/service/scheduler.go
package service

import (
	"log"
	"sync"
	"time"
)

// Scheduler drives periodic reconciliation so campaigns cross their
// time boundaries even when nobody is hitting the API. Reads reconcile
// on their own; this covers the quiet stretches.
type Scheduler struct {
	Service  *CampaignService
	Interval time.Duration

	mtx       sync.Mutex
	isRunning bool
	stopChan  chan struct{}
}

func NewScheduler(svc *CampaignService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Scheduler{
		Service:  svc,
		Interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the reconciliation ticker
func (s *Scheduler) Start() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.isRunning {
		return
	}
	s.isRunning = true

	ticker := time.NewTicker(s.Interval)
	go func(t *time.Ticker) {
		// initial run
		s.tick()

		for {
			select {
			case <-t.C:
				s.tick()
			case <-s.stopChan:
				t.Stop()
				return
			}
		}
	}(ticker)
}

// Stop pauses the reconciliation ticker
func (s *Scheduler) Stop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.isRunning {
		return
	}

	s.stopChan <- struct{}{}
	s.isRunning = false
}

func (s *Scheduler) tick() {
	events, err := s.Service.ReconcileNow()
	if err != nil {
		log.Println("⚠️ reconciliation pass failed:", err)
		return
	}
	if len(events) > 0 {
		log.Printf("✅ Reconciled %d status transition(s)\n", len(events))
	}
}
