package sweep

import (
	"context"
	"os"
	"time"

	"go-leave/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const LockKey = "leave:sweep:lock"

// releaseScript drops the lock only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type SchedulerConfig struct {
	Interval time.Duration
	LockTTL  time.Duration
	// Owner identifies this process in the lock value. Defaults to
	// hostname plus a random suffix.
	Owner string
}

// Scheduler runs the sweep on a ticker. Instances share a redis lock so only
// one of them sweeps at a time.
type Scheduler struct {
	service Service
	rdb     *redis.Client
	clock   dateutil.Clock
	cfg     SchedulerConfig
	logger  *zap.Logger
}

func NewScheduler(service Service, rdb *redis.Client, clock dateutil.Clock, cfg SchedulerConfig, logger ...*zap.Logger) *Scheduler {
	l := zap.L().Named("sweep.scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sweep.scheduler")
	}
	if clock == nil {
		clock = dateutil.SystemClock{}
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	if cfg.Owner == "" {
		host, _ := os.Hostname()
		cfg.Owner = host + "-" + uuid.NewString()[:8]
	}
	return &Scheduler{service: service, rdb: rdb, clock: clock, cfg: cfg, logger: l}
}

// Start sweeps once immediately and then on every tick until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Info("sweep scheduler started",
		zap.Duration("interval", s.cfg.Interval),
		zap.String("owner", s.cfg.Owner),
	)

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweep scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if _, _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("scheduled sweep failed", zap.Error(err))
	}
}

// RunOnce sweeps as of today if the lock is free. The bool reports whether
// this instance held the lock.
func (s *Scheduler) RunOnce(ctx context.Context) (Result, bool, error) {
	acquired, err := s.rdb.SetNX(ctx, LockKey, s.cfg.Owner, s.cfg.LockTTL).Result()
	if err != nil {
		return Result{}, false, err
	}
	if !acquired {
		s.logger.Debug("sweep lock held elsewhere", zap.String("key", LockKey))
		return Result{}, false, nil
	}
	defer s.release()

	res, err := s.service.Run(ctx, s.clock.Today())
	return res, true, err
}

func (s *Scheduler) release() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, s.rdb, []string{LockKey}, s.cfg.Owner).Err(); err != nil {
		s.logger.Warn("release sweep lock failed", zap.Error(err))
	}
}
