// Package scheduler runs the periodic reservation sweep.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper is what the scheduler drives on every tick. Satisfied by the
// application layer.
type Sweeper interface {
	RunReservationSweep() int
}

// ReservationSweepScheduler periodically emails reservation holders whose
// book is back on the shelf.
type ReservationSweepScheduler struct {
	sweeper  Sweeper
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewReservationSweepScheduler(sweeper Sweeper, schedule string) *ReservationSweepScheduler {
	return &ReservationSweepScheduler{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start begins the scheduler.
func (s *ReservationSweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runSweep)
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Reservation sweep scheduler: started with schedule %q", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep.
func (s *ReservationSweepScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Reservation sweep scheduler: stopped")
}

// RunNow triggers an immediate sweep.
func (s *ReservationSweepScheduler) RunNow() {
	go s.runSweep()
}

// IsRunning returns whether the scheduler is active.
func (s *ReservationSweepScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next sweep will occur.
func (s *ReservationSweepScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *ReservationSweepScheduler) runSweep() {
	if notified := s.sweeper.RunReservationSweep(); notified > 0 {
		log.Printf("Reservation sweep: notified %d holder(s)", notified)
	}
}
