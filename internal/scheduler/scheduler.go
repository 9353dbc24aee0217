package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/jverhelst/scorecast/internal/platform/logging"
)

// Job is a named periodic task. Run errors are logged, never fatal; the
// next tick always fires.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler drives the reconciliation and reminder loops on fixed
// intervals via gocron.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *logging.Logger
}

func New(logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("init scheduler: %w", err)
	}
	return &Scheduler{scheduler: sched, logger: logger}, nil
}

func (s *Scheduler) Register(ctx context.Context, job Job) error {
	if job.Interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", job.Name)
	}
	if job.Run == nil {
		return fmt.Errorf("job %s: run func is required", job.Name)
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(job.Interval),
		gocron.NewTask(func() {
			started := time.Now()
			if err := job.Run(ctx); err != nil {
				s.logger.WarnContext(ctx, "scheduled job failed",
					"job", job.Name,
					"duration_ms", time.Since(started).Milliseconds(),
					"error", err,
				)
				return
			}
			s.logger.DebugContext(ctx, "scheduled job finished",
				"job", job.Name,
				"duration_ms", time.Since(started).Milliseconds(),
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", job.Name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}
