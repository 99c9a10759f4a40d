// Package workday counts leave days: calendar days in a range minus the
// weekly rest days and the holiday calendar.
package workday

import (
	"context"
	"time"

	"go-leave/internal/shared/dateutil"

	"go.uber.org/zap"
)

type Service interface {
	CountWorkingDays(ctx context.Context, start, end time.Time) (int, error)
	IsHoliday(ctx context.Context, d time.Time) (bool, error)
}

type service struct {
	repo     Repository
	restDays map[time.Weekday]struct{}
	logger   *zap.Logger
}

func NewService(repo Repository, restDays []time.Weekday, logger ...*zap.Logger) Service {
	l := zap.L().Named("workday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workday.service")
	}
	rest := make(map[time.Weekday]struct{}, len(restDays))
	for _, d := range restDays {
		rest[d] = struct{}{}
	}
	return &service{repo: repo, restDays: rest, logger: l}
}

// CountWorkingDays counts the days in [start, end], both inclusive, that
// are neither rest days nor holidays. A reversed range counts zero.
func (s *service) CountWorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	start, end = dateutil.Truncate(start), dateutil.Truncate(end)
	if end.Before(start) {
		return 0, nil
	}

	holidays, err := s.repo.ListRelevant(ctx, start, end)
	if err != nil {
		return 0, err
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, rest := s.restDays[d.Weekday()]; rest {
			continue
		}
		if isHoliday(holidays, d) {
			continue
		}
		count++
	}

	s.logger.Debug("working days counted",
		zap.String("start", dateutil.Format(start)),
		zap.String("end", dateutil.Format(end)),
		zap.Int("days", count),
	)
	return count, nil
}

func (s *service) IsHoliday(ctx context.Context, d time.Time) (bool, error) {
	d = dateutil.Truncate(d)
	holidays, err := s.repo.ListRelevant(ctx, d, d)
	if err != nil {
		return false, err
	}
	return isHoliday(holidays, d), nil
}

func isHoliday(holidays []Holiday, d time.Time) bool {
	for _, h := range holidays {
		if h.Matches(d) {
			return true
		}
	}
	return false
}
