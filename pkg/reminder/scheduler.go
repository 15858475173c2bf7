package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type dispatcher interface {
	Dispatch(ctx context.Context) (Result, error)
}

// NewScheduler runs dispatcher on the standard five field cron schedule spec.
func NewScheduler(logger *slog.Logger, spec string, dispatcher dispatcher) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	s := &Scheduler{
		logger:     logger,
		cron:       c,
		dispatcher: dispatcher,
	}

	if _, err := c.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %v", spec, err)
	}
	return s, nil
}

type Scheduler struct {
	logger     *slog.Logger
	cron       *cron.Cron
	dispatcher dispatcher
	ctx        context.Context
}

// Run starts the schedule and blocks until ctx is done. A dispatch in progress is waited for before
// returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.ctx = ctx
	s.cron.Start()
	s.logger.InfoContext(ctx, "Reminder schedule started", "entries", len(s.cron.Entries()))

	<-ctx.Done()

	<-s.cron.Stop().Done()
	return nil
}

func (s *Scheduler) run() {
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := s.dispatcher.Dispatch(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Reminder dispatch failed", "error", err)
	}
}
