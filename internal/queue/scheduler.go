package queue

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"
)

// Scheduler runs the dispatcher on a fixed interval until its context ends.
type Scheduler struct {
	dispatcher *Dispatcher
	interval   time.Duration
	logger     ectologger.Logger
}

func NewScheduler(dispatcher *Dispatcher, interval time.Duration, logger ectologger.Logger) *Scheduler {
	return &Scheduler{
		dispatcher: dispatcher,
		interval:   interval,
		logger:     logger,
	}
}

// Run blocks until ctx is done, dispatching one batch per tick. A failed run
// is logged and the loop keeps going; the next tick retries naturally.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.WithContext(ctx).Infof("Dispatch scheduler running every %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.WithContext(ctx).Info("Dispatch scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.dispatcher.DispatchBatch(ctx); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("Dispatch run failed")
			}
		}
	}
}
