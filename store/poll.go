package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Scheduler runs job every interval until the returned cancel func is called. Cancel must be
// synchronous: once it returns no new run starts, runs already in progress may finish.
type Scheduler interface {
	Every(interval time.Duration, job func()) (cancel func())
}

// PollHandle stops a polling loop started by StartPolling
type PollHandle struct {
	once   sync.Once
	cancel func()
}

// Stop prevents further ticks. Fetches already in flight are not cancelled.
func (h *PollHandle) Stop() {
	h.once.Do(h.cancel)
}

// Refresh fetches reports and posts once. Both are attempted; their errors are combined.
func (s *Store) Refresh(ctx context.Context) error {
	_, rerr := s.FetchReports(ctx)
	_, perr := s.FetchPosts(ctx)
	return multierr.Combine(rerr, perr)
}

// StartPolling refreshes right away, then every interval. Ticks are not serialized: a slow
// response may land after a newer one and overwrite it.
func (s *Store) StartPolling(ctx context.Context, interval time.Duration) (*PollHandle, error) {
	if s.scheduler == nil {
		return nil, ErrNoScheduler
	}

	tick := func() {
		if ctx.Err() != nil || !s.Active() {
			return
		}
		if err := s.Refresh(ctx); err != nil {
			zap.S().Debugw("poll tick failed, keeping previous data", "error", err)
		}
	}

	tick()
	cancel := s.scheduler.Every(interval, tick)
	zap.S().Infow("polling started", "interval", interval)
	return &PollHandle{cancel: cancel}, nil
}
