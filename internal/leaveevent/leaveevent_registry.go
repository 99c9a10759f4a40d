package leaveevent

import (
	"context"
	"time"

	leaveeventerrors "go-leave/internal/leaveevent/errors"
	"go-leave/internal/shared/dateutil"
	"go-leave/internal/shared/dberr"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Registry gates event-triggered benefits. Revoking an event hands the
// benefit back to the employee.
type Registry interface {
	WithTx(tx *gorm.DB) Registry
	HasUsedOneTimeBenefit(ctx context.Context, employeeID, leaveTypeID uuid.UUID) (bool, error)
	Register(ctx context.Context, employeeID, leaveTypeID uuid.UUID, date time.Time, description string) (uuid.UUID, error)
	Revoke(ctx context.Context, eventID uuid.UUID) error
}

type registry struct {
	repo   Repository
	logger *zap.Logger
}

func NewRegistry(repo Repository, logger ...*zap.Logger) Registry {
	l := zap.L().Named("leaveevent.registry")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaveevent.registry")
	}
	return &registry{repo: repo, logger: l}
}

func (r *registry) WithTx(tx *gorm.DB) Registry {
	return &registry{repo: r.repo.WithTx(tx), logger: r.logger}
}

// HasUsedOneTimeBenefit locks the (employee, leave type) pair before looking,
// so inside a transaction the answer holds until commit.
func (r *registry) HasUsedOneTimeBenefit(ctx context.Context, employeeID, leaveTypeID uuid.UUID) (bool, error) {
	empID, ltID := employeeID.String(), leaveTypeID.String()
	if err := r.repo.LockBenefit(ctx, empID, ltID); err != nil {
		return false, err
	}
	return r.repo.ExistsFor(ctx, empID, ltID)
}

func (r *registry) Register(ctx context.Context, employeeID, leaveTypeID uuid.UUID, date time.Time, description string) (uuid.UUID, error) {
	e := &Event{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		EventDate:   dateutil.Truncate(date),
		Description: description,
	}
	if err := r.repo.Create(ctx, e); err != nil {
		if dberr.IsUniqueViolation(err, "uq_leave_event_date") {
			return uuid.Nil, leaveeventerrors.ErrEventAlreadyRegistered
		}
		return uuid.Nil, err
	}

	r.logger.Debug("leave event registered",
		zap.String("event_id", e.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("leave_type_id", leaveTypeID.String()),
		zap.String("event_date", dateutil.Format(e.EventDate)),
	)
	return e.ID, nil
}

func (r *registry) Revoke(ctx context.Context, eventID uuid.UUID) error {
	n, err := r.repo.Delete(ctx, eventID.String())
	if err != nil {
		return err
	}
	if n == 0 {
		return leaveeventerrors.ErrEventNotFound
	}
	r.logger.Debug("leave event revoked", zap.String("event_id", eventID.String()))
	return nil
}
