// Package sweep materializes the annual balances every active employee has
// earned. Balances are only ever inserted here, through the ledger's
// insert-if-absent, so a sweep may overlap live request processing.
package sweep

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-leave/internal/balance"
	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/employee"
	"go-leave/internal/events"
	"go-leave/internal/leavetype"
	"go-leave/internal/shared/dateutil"
	"go-leave/internal/shared/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultConcurrency = 4

type Result struct {
	Employees       int `json:"employees"`
	BalancesCreated int `json:"balances_created"`
	Failures        int `json:"failures"`
}

//go:generate mockgen -source=sweep_service.go -destination=mock/sweep_service_mock.go -package=mock
type Service interface {
	Run(ctx context.Context, asOf time.Time) (Result, error)
	SweepEmployee(ctx context.Context, employeeID string, asOf time.Time) (Result, error)
}

type service struct {
	db          *gorm.DB
	balances    balance.Repository
	ledger      *balance.Ledger
	employees   employee.Directory
	leaveTypes  leavetype.Service
	concurrency int
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	balances balance.Repository,
	ledger *balance.Ledger,
	employees employee.Directory,
	leaveTypes leavetype.Service,
	concurrency int,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("sweep.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sweep.service")
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &service{
		db:          db,
		balances:    balances,
		ledger:      ledger,
		employees:   employees,
		leaveTypes:  leaveTypes,
		concurrency: concurrency,
		logger:      l,
	}
}

// Run sweeps every active employee as of asOf. A failure on one employee is
// counted and logged; the rest of the run carries on.
func (s *service) Run(ctx context.Context, asOf time.Time) (Result, error) {
	started := time.Now()
	asOf = dateutil.Truncate(asOf)
	s.logger.Info("sweep started", zap.String("as_of", dateutil.Format(asOf)))

	emps, err := s.employees.ListActive(ctx)
	if err != nil {
		metrics.SweepRuns.WithLabelValues("error").Inc()
		s.logger.Error("sweep list employees failed", zap.Error(err))
		return Result{}, err
	}
	types, err := s.leaveTypes.ListAnnual(ctx)
	if err != nil {
		metrics.SweepRuns.WithLabelValues("error").Inc()
		s.logger.Error("sweep list leave types failed", zap.Error(err))
		return Result{}, err
	}

	var (
		mu  sync.Mutex
		res = Result{Employees: len(emps)}
		g   errgroup.Group
	)
	g.SetLimit(s.concurrency)
	for _, emp := range emps {
		emp := emp
		g.Go(func() error {
			created, err := s.sweepOne(ctx, emp, types, asOf)

			mu.Lock()
			defer mu.Unlock()
			res.BalancesCreated += created
			if err != nil {
				res.Failures++
				s.logger.Warn("sweep employee failed",
					zap.String("employee_id", emp.ID.String()),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	metrics.SweepDuration.Observe(time.Since(started).Seconds())
	if err := ctx.Err(); err != nil {
		metrics.SweepRuns.WithLabelValues("cancelled").Inc()
		return res, err
	}
	result := "ok"
	if res.Failures > 0 {
		result = "partial"
	}
	metrics.SweepRuns.WithLabelValues(result).Inc()

	s.logger.Info("sweep finished",
		zap.String("as_of", dateutil.Format(asOf)),
		zap.Int("employees", res.Employees),
		zap.Int("balances_created", res.BalancesCreated),
		zap.Int("failures", res.Failures),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}

// SweepEmployee runs the same pass for a single employee. Inactive
// employees are skipped.
func (s *service) SweepEmployee(ctx context.Context, employeeID string, asOf time.Time) (Result, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return Result{}, err
	}
	if !emp.IsActive {
		s.logger.Debug("sweep skipped inactive employee", zap.String("employee_id", employeeID))
		return Result{}, nil
	}
	types, err := s.leaveTypes.ListAnnual(ctx)
	if err != nil {
		return Result{}, err
	}

	created, err := s.sweepOne(ctx, emp, types, dateutil.Truncate(asOf))
	if err != nil {
		return Result{Employees: 1, BalancesCreated: created, Failures: 1}, err
	}
	return Result{Employees: 1, BalancesCreated: created}, nil
}

func (s *service) sweepOne(ctx context.Context, emp employee.Employee, types []leavetype.LeaveType, asOf time.Time) (int, error) {
	years := s.targetYears(emp.HireDate, asOf)
	if len(years) == 0 {
		return 0, nil
	}

	created := 0
	for _, lt := range types {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		have, err := s.balances.ListYears(ctx, emp.ID.String(), lt.ID.String())
		if err != nil {
			return created, err
		}
		existing := make(map[int]bool, len(have))
		for _, y := range have {
			existing[y] = true
		}

		for _, year := range years {
			if existing[year] {
				continue
			}
			b, ok, err := s.ensure(ctx, emp, lt, year)
			if errors.Is(err, balanceerrors.ErrNoEntitlement) {
				s.logger.Debug("sweep skipped leave type without entitlement", zap.String("leave_type_id", lt.ID.String()))
				break
			}
			if err != nil {
				return created, err
			}
			if ok {
				created++
				s.ledger.Publish(ctx, events.BalanceCreated, balance.OriginSweep, *b)
			}
		}
	}
	return created, nil
}

// targetYears lists every anniversary year reached at asOf, plus the next
// one when it opens later in the same calendar year.
func (s *service) targetYears(hire, asOf time.Time) []int {
	calc := s.ledger.Calculator()

	var years []int
	next := 0
	if maxYear, ok := calc.MaxAnniversaryYear(hire, asOf); ok {
		years = make([]int, 0, maxYear+2)
		for y := 0; y <= maxYear; y++ {
			years = append(years, y)
		}
		next = maxYear + 1
	}

	start := calc.Period(hire, next).Start
	if start.After(asOf) && start.Year() == asOf.Year() {
		years = append(years, next)
	}
	return years
}

func (s *service) ensure(ctx context.Context, emp employee.Employee, lt leavetype.LeaveType, year int) (*balance.Balance, bool, error) {
	var (
		b       *balance.Balance
		created bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		b, created, err = s.ledger.Ensure(ctx, s.balances.WithTx(tx), emp, lt, year)
		return err
	})
	return b, created, err
}
