package services

import (
	"log"
	"sync"
	"time"
)

// Sweeper is anything that can drop its expired entries.
type Sweeper interface {
	Sweep() int
}

// TokenJanitor periodically sweeps expired admin tokens out of the
// in-memory store. Validity checks are already lazy, so this only bounds
// memory growth; it is not started when tokens live in Redis.
type TokenJanitor struct {
	sweeper       Sweeper
	checkInterval time.Duration
	stopChan      chan struct{}
	wg            sync.WaitGroup
	mu            sync.Mutex
	isRunning     bool
}

// NewTokenJanitor creates a janitor that sweeps at the given interval.
func NewTokenJanitor(sweeper Sweeper, checkInterval time.Duration) *TokenJanitor {
	if checkInterval <= 0 {
		checkInterval = 10 * time.Minute
	}
	return &TokenJanitor{
		sweeper:       sweeper,
		checkInterval: checkInterval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the sweep loop.
func (s *TokenJanitor) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()

	log.Printf("TokenJanitor started (interval: %v)", s.checkInterval)
}

// Stop stops the sweep loop and waits for it to exit.
func (s *TokenJanitor) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
	log.Println("TokenJanitor stopped")
}

func (s *TokenJanitor) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.sweeper.Sweep(); removed > 0 {
				log.Printf("TokenJanitor: removed %d expired admin tokens", removed)
			}
		case <-s.stopChan:
			return
		}
	}
}
