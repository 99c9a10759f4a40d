package balance

import (
	"context"
	"errors"
	"time"

	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/employee"
	"go-leave/internal/events"
	"go-leave/internal/leavetype"
	"go-leave/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	EnsureBalance(ctx context.Context, employeeID, leaveTypeID string, year *int) (EnsureBalanceResponse, error)
	GetBalances(ctx context.Context, employeeID string, asOf *time.Time) ([]BalanceResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	ledger     *Ledger
	employees  employee.Directory
	leaveTypes leavetype.Service
	clock      dateutil.Clock
	logger     *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	ledger *Ledger,
	employees employee.Directory,
	leaveTypes leavetype.Service,
	clock dateutil.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	if clock == nil {
		clock = dateutil.SystemClock{}
	}
	return &service{
		db:         db,
		repo:       repo,
		ledger:     ledger,
		employees:  employees,
		leaveTypes: leaveTypes,
		clock:      clock,
		logger:     l,
	}
}

// EnsureBalance materialises one annual balance. Without a year it targets
// the anniversary year the employee is currently in; an explicit year may
// run one ahead of that so upcoming periods can be opened early.
func (s *service) EnsureBalance(ctx context.Context, employeeID, leaveTypeID string, year *int) (EnsureBalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EnsureBalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(leaveTypeID); err != nil {
		return EnsureBalanceResponse{}, balanceerrors.ErrInvalidLeaveTypeID
	}
	if year != nil && *year < 0 {
		return EnsureBalanceResponse{}, balanceerrors.ErrInvalidAnniversaryYear
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return EnsureBalanceResponse{}, err
	}
	lt, err := s.leaveTypes.GetByID(ctx, leaveTypeID)
	if err != nil {
		return EnsureBalanceResponse{}, err
	}

	target, err := s.ledger.TargetYear(emp.HireDate, s.clock.Today(), year)
	if err != nil {
		if errors.Is(err, balanceerrors.ErrNotYetEligible) {
			s.logger.Warn("ensure balance before eligibility",
				zap.String("employee_id", employeeID),
				zap.String("hire_date", dateutil.Format(emp.HireDate)),
			)
		}
		return EnsureBalanceResponse{}, err
	}

	var (
		b       *Balance
		created bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		b, created, err = s.ledger.Ensure(ctx, s.repo.WithTx(tx), emp, lt, target)
		return err
	})
	if err != nil {
		s.logger.Warn("ensure balance failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Int("anniversary_year", target),
			zap.Error(err),
		)
		return EnsureBalanceResponse{}, err
	}

	if created {
		s.ledger.Publish(ctx, events.BalanceCreated, OriginAPI, *b)
	}
	s.logger.Info("ensure balance success",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("anniversary_year", target),
		zap.Bool("created", created),
	)
	return EnsureBalanceResponse{Created: created, Balance: mapToResponse(*b)}, nil
}

func (s *service) GetBalances(ctx context.Context, employeeID string, asOf *time.Time) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, balanceerrors.ErrInvalidEmployeeID
	}
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	if asOf != nil {
		d := dateutil.Truncate(*asOf)
		asOf = &d
	}
	balances, err := s.repo.ListByEmployee(ctx, employeeID, asOf)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(balances), nil
}
