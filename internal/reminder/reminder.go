package reminder

import (
	"context"
	"log"
	"time"

	"guestdesk-backend/config"
	"guestdesk-backend/internal/notification"
	"guestdesk-backend/internal/store"
)

// Service periodically re-notifies hosts about properties that have been
// waiting in needs_cleaning for longer than the configured threshold.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool
}

// NewService creates a reminder sweeper backed by the given worker pool.
func NewService(cfg *config.Config, s store.Store, workerPool *notification.WorkerPool) *Service {
	return &Service{
		cfg:        cfg,
		store:      s,
		workerPool: workerPool,
	}
}

// Run starts the sweep loop. It returns when the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Reminder.Enabled {
		log.Println("Cleaning reminder sweeper is disabled. Not starting.")
		return
	}
	log.Println("Starting cleaning reminder sweeper...")

	s.SweepOnce(ctx)

	timer := time.NewTimer(s.cfg.Reminder.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Cleaning reminder sweeper shutting down.")
			return
		case <-timer.C:
			s.SweepOnce(ctx)
			timer.Reset(s.cfg.Reminder.Interval)
		}
	}
}

// SweepOnce performs a single sweep and dispatches a notification job for
// every stale property.
func (s *Service) SweepOnce(ctx context.Context) {
	now := time.Now().UTC()

	propertyIDs, err := s.store.StaleCleaningProperties(ctx, now, s.cfg.Reminder.StaleAfter)
	if err != nil {
		log.Printf("Error sweeping for stale cleaning properties: %v", err)
		return
	}
	if len(propertyIDs) == 0 {
		return
	}

	log.Printf("Dispatching cleaning reminders for %d properties", len(propertyIDs))
	for _, propertyID := range propertyIDs {
		s.workerPool.Dispatch(propertyID)
	}
}
