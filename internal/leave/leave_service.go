package leave

import (
	"context"
	"errors"
	"time"

	"go-leave/internal/balance"
	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/leaveevent"
	leaveeventerrors "go-leave/internal/leaveevent/errors"
	"go-leave/internal/leavetype"
	"go-leave/internal/notification"
	"go-leave/internal/shared/dateutil"
	"go-leave/internal/shared/dberr"
	"go-leave/internal/shared/metrics"
	"go-leave/internal/workday"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actorID string, req SubmitLeaveRequest) (LeaveResponse, error)
	Transition(ctx context.Context, actorID, id string, req TransitionLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	ListByEmployee(ctx context.Context, employeeID, status string) ([]LeaveResponse, error)
}

type Deps struct {
	DB         *gorm.DB
	Repo       Repository
	Balances   balance.Repository
	Ledger     *balance.Ledger
	Registry   leaveevent.Registry
	Employees  employee.Directory
	LeaveTypes leavetype.Service
	Workdays   workday.Service
	Notifier   notification.Notifier
	Clock      dateutil.Clock
}

type service struct {
	Deps
	logger *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if deps.Notifier == nil {
		deps.Notifier = notification.Nop()
	}
	if deps.Clock == nil {
		deps.Clock = dateutil.SystemClock{}
	}
	return &service{Deps: deps, logger: l}
}

// balanceWrite is a ledger write to announce once the transaction commits.
type balanceWrite struct {
	eventType string
	balance   balance.Balance
}

func (s *service) Submit(ctx context.Context, actorID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actorUUID, startDate, endDate, err := validateSubmitRequest(actorID, req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	emp, err := s.Employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !emp.IsActive {
		return LeaveResponse{}, employeeerrors.ErrEmployeeInactive
	}
	lt, err := s.LeaveTypes.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	classification, err := leavetype.Resolve(lt)
	if err != nil {
		return LeaveResponse{}, err
	}
	policy, err := leavetype.PolicyFor(classification)
	if err != nil {
		return LeaveResponse{}, err
	}

	days, err := s.Workdays.CountWorkingDays(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("submit leave count working days failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.checkRequestRules(lt, startDate, days); err != nil {
		s.logger.Warn("submit leave rejected by leave type rules",
			zap.String("leave_type_id", req.LeaveTypeID),
			zap.Int("requested_days", days),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		RequestedDays: days,
		Notes:         req.Notes,
		Status:        StatusPending,
		CreatedBy:     actorUUID,
	}

	var writes []balanceWrite
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.Repo.WithTx(tx)
		btx := s.Balances.WithTx(tx)

		overlap, err := qtx.HasOverlappingPeriod(ctx, req.EmployeeID, startDate, endDate, nil)
		if err != nil {
			return err
		}
		if overlap {
			return leaveerrors.ErrLeaveOverlap
		}

		if policy.EventBased {
			writes, err = s.bookEvent(ctx, tx, btx, policy, emp, lt, l)
		} else {
			writes, err = s.bookAnnual(ctx, btx, emp, lt, l, req.AnniversaryYear)
		}
		if err != nil {
			return err
		}

		if err := qtx.Create(ctx, l); err != nil {
			if dberr.IsUniqueViolation(err, ActivePeriodIndex) {
				return leaveerrors.ErrDuplicateRequest
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("submit leave failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("leave_type_id", req.LeaveTypeID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	metrics.LeaveSubmissions.WithLabelValues(string(classification)).Inc()
	s.announce(ctx, writes, *l, "", actorID, "")
	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("classification", string(classification)),
		zap.Int("requested_days", days),
	)
	return mapToResponse(*l), nil
}

// bookAnnual reserves the requested days as pending on the resolved
// anniversary-year balance.
func (s *service) bookAnnual(
	ctx context.Context,
	btx balance.Repository,
	emp employee.Employee,
	lt leavetype.LeaveType,
	l *LeaveRequest,
	explicitYear *int,
) ([]balanceWrite, error) {
	var writes []balanceWrite

	b, created, err := s.resolveAnnualBalance(ctx, btx, emp, lt, l.StartDate, explicitYear)
	if err != nil {
		return nil, err
	}
	if created {
		writes = append(writes, balanceWrite{eventType: events.BalanceCreated, balance: *b})
	}

	change, err := s.Ledger.Adjust(ctx, btx, b.ID.String(), balance.Delta{Pending: l.RequestedDays})
	if err != nil {
		return nil, err
	}

	year := change.After.AnniversaryYear
	balanceID := change.After.ID
	l.AnniversaryYear = &year
	l.BalanceID = &balanceID
	l.BalanceAtRequest = change.Before.Committed()
	return append(writes, balanceWrite{eventType: events.BalanceUpdated, balance: change.After}), nil
}

// resolveAnnualBalance picks the balance a request draws on: the explicit
// year when the employee may already open it, else the period holding the start date, else the latest period,
// else the year the start date falls in, created on the spot.
func (s *service) resolveAnnualBalance(
	ctx context.Context,
	btx balance.Repository,
	emp employee.Employee,
	lt leavetype.LeaveType,
	start time.Time,
	explicitYear *int,
) (*balance.Balance, bool, error) {
	if explicitYear != nil {
		year, err := s.Ledger.TargetYear(emp.HireDate, s.Clock.Today(), explicitYear)
		if err != nil {
			return nil, false, err
		}
		return s.Ledger.Ensure(ctx, btx, emp, lt, year)
	}

	empID, ltID := emp.ID.String(), lt.ID.String()
	b, err := btx.FindContaining(ctx, empID, ltID, start)
	if err == nil {
		return b, false, nil
	}
	if !dberr.IsNotFound(err) {
		return nil, false, err
	}

	b, err = btx.FindLatest(ctx, empID, ltID)
	if err == nil {
		return b, false, nil
	}
	if !dberr.IsNotFound(err) {
		return nil, false, err
	}

	year, ok := s.Ledger.Calculator().MaxAnniversaryYear(emp.HireDate, start)
	if !ok {
		return nil, false, balanceerrors.ErrNotYetEligible
	}
	return s.Ledger.Ensure(ctx, btx, emp, lt, year)
}

// bookEvent opens an event-based balance for the request and records the
// event. One-time benefits already on record are refused before anything
// is written; the check locks the (employee, leave type) pair until commit.
func (s *service) bookEvent(
	ctx context.Context,
	tx *gorm.DB,
	btx balance.Repository,
	policy leavetype.Policy,
	emp employee.Employee,
	lt leavetype.LeaveType,
	l *LeaveRequest,
) ([]balanceWrite, error) {
	registry := s.Registry.WithTx(tx)

	if policy.OncePerEmployment {
		used, err := registry.HasUsedOneTimeBenefit(ctx, emp.ID, lt.ID)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, leaveeventerrors.ErrBenefitExhausted
		}
	}

	eventID, err := registry.Register(ctx, emp.ID, lt.ID, l.StartDate, l.Notes)
	if err != nil {
		return nil, err
	}

	change, err := s.Ledger.OpenEventBalance(ctx, btx, emp, lt, l.StartDate, l.EndDate, l.RequestedDays, eventID)
	if err != nil {
		return nil, err
	}

	eventType := events.BalanceUpdated
	if change.Before.ID == uuid.Nil {
		eventType = events.BalanceCreated
	}
	year := change.After.AnniversaryYear
	balanceID := change.After.ID
	l.AnniversaryYear = &year
	l.BalanceID = &balanceID
	l.EventID = &eventID
	l.BalanceAtRequest = change.Before.Committed()
	return []balanceWrite{{eventType: eventType, balance: change.After}}, nil
}

func (s *service) checkRequestRules(lt leavetype.LeaveType, start time.Time, days int) error {
	if days <= 0 {
		return leaveerrors.ErrNoWorkingDays
	}
	if lt.MaxDaysPerRequest != nil && days > *lt.MaxDaysPerRequest {
		return leaveerrors.ErrExceedsMaxDaysPerRequest
	}
	if lt.MinNoticeDays > 0 {
		earliest := s.Clock.Today().AddDate(0, 0, lt.MinNoticeDays)
		if start.Before(earliest) {
			return leaveerrors.ErrInsufficientNotice
		}
	}
	return nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.Transition(ctx, actorID, id, TransitionLeaveRequest{Status: StatusApproved})
}

func (s *service) Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error) {
	return s.Transition(ctx, actorID, id, TransitionLeaveRequest{Status: StatusRejected, RejectionReason: &rejectionReason})
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.Transition(ctx, actorID, id, TransitionLeaveRequest{Status: StatusCancelled})
}

// Transition moves a request to a new status and applies the matching
// ledger effect in the same transaction. The status write only lands if
// the row still carries the status it was read with.
func (s *service) Transition(ctx context.Context, actorID, id string, req TransitionLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	target := req.Status
	if target != StatusApproved && target != StatusRejected && target != StatusCancelled {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}
	if target == StatusRejected && (req.RejectionReason == nil || *req.RejectionReason == "") {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	pre, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !isAllowedStatusTransition(pre.Status, target) {
		s.logger.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", pre.Status),
			zap.String("to_status", target),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	lt, err := s.LeaveTypes.GetByID(ctx, pre.LeaveTypeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	classification, err := leavetype.Resolve(lt)
	if err != nil {
		return LeaveResponse{}, err
	}
	policy, err := leavetype.PolicyFor(classification)
	if err != nil {
		return LeaveResponse{}, err
	}

	var (
		l      *LeaveRequest
		writes []balanceWrite
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.Repo.WithTx(tx)

		cur, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cur.Status != pre.Status {
			return leaveerrors.ErrConcurrencyConflict
		}
		if cur.BalanceID == nil {
			metrics.LedgerIntegrityFaults.Inc()
			s.logger.Error("ledger integrity fault: request has no balance",
				zap.String("leave_id", id),
				zap.String("status", cur.Status),
			)
			return balanceerrors.ErrLedgerIntegrityFault
		}

		if policy.EventBased {
			writes, err = s.applyEventEffect(ctx, tx, policy, cur, target)
		} else {
			writes, err = s.applyAnnualEffect(ctx, tx, cur, target)
		}
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		cur.Status = target
		cur.DecidedBy = &actorUUID
		cur.DecidedAt = &now
		cur.RejectionReason = nil
		if target == StatusRejected {
			cur.RejectionReason = req.RejectionReason
		}

		n, err := qtx.UpdateTransition(ctx, cur, pre.Status)
		if err != nil {
			return err
		}
		if n == 0 {
			return leaveerrors.ErrConcurrencyConflict
		}
		l = cur
		return nil
	})
	if err != nil {
		if dberr.IsNotFound(err) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		if errors.Is(err, leaveerrors.ErrConcurrencyConflict) {
			metrics.ConcurrencyConflicts.WithLabelValues("leave_request").Inc()
		}
		s.logger.Warn("transition leave status failed",
			zap.String("leave_id", id),
			zap.String("from_status", pre.Status),
			zap.String("to_status", target),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	metrics.LeaveTransitions.WithLabelValues(pre.Status, target, string(classification)).Inc()
	reason := ""
	if l.RejectionReason != nil {
		reason = *l.RejectionReason
	}
	s.announce(ctx, writes, *l, pre.Status, actorID, reason)
	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("from_status", pre.Status),
		zap.String("status", target),
	)
	return mapToResponse(*l), nil
}

func (s *service) applyAnnualEffect(ctx context.Context, tx *gorm.DB, l *LeaveRequest, target string) ([]balanceWrite, error) {
	var d balance.Delta
	switch {
	case l.Status == StatusPending && target == StatusApproved:
		d = balance.Delta{Pending: -l.RequestedDays, Used: l.RequestedDays}
	case l.Status == StatusPending:
		d = balance.Delta{Pending: -l.RequestedDays}
	case l.Status == StatusApproved && target == StatusCancelled:
		d = balance.Delta{Used: -l.RequestedDays}
	}

	change, err := s.Ledger.Adjust(ctx, s.Balances.WithTx(tx), l.BalanceID.String(), d)
	if err != nil {
		return nil, err
	}
	l.BalanceAtRequest = change.Before.Committed()
	return []balanceWrite{{eventType: events.BalanceUpdated, balance: change.After}}, nil
}

func (s *service) applyEventEffect(ctx context.Context, tx *gorm.DB, policy leavetype.Policy, l *LeaveRequest, target string) ([]balanceWrite, error) {
	btx := s.Balances.WithTx(tx)
	balanceID := l.BalanceID.String()

	switch {
	case l.Status == StatusPending && target == StatusApproved:
		change, err := s.Ledger.ApplyEventApproval(ctx, btx, balanceID)
		if err != nil {
			return nil, err
		}
		l.BalanceAtRequest = change.Before.Committed()
		return []balanceWrite{{eventType: events.BalanceUpdated, balance: change.After}}, nil

	case l.Status == StatusPending:
		removed, err := s.Ledger.Remove(ctx, btx, balanceID)
		if err != nil {
			return nil, err
		}
		if policy.RevokeOnWithdraw {
			if err := s.revokeEvent(ctx, tx, l); err != nil {
				return nil, err
			}
		}
		l.BalanceAtRequest = removed.Committed()
		l.BalanceID = nil
		return []balanceWrite{{eventType: events.BalanceDeleted, balance: removed}}, nil

	default:
		change, err := s.Ledger.ResetEvent(ctx, btx, balanceID, policy.RevokeOnApprovedCancel)
		if err != nil {
			return nil, err
		}
		if policy.RevokeOnApprovedCancel {
			if err := s.revokeEvent(ctx, tx, l); err != nil {
				return nil, err
			}
		}
		l.BalanceAtRequest = change.Before.Committed()
		return []balanceWrite{{eventType: events.BalanceUpdated, balance: change.After}}, nil
	}
}

// revokeEvent hands the benefit back. A request whose event is already gone
// points at ledger state that no longer exists.
func (s *service) revokeEvent(ctx context.Context, tx *gorm.DB, l *LeaveRequest) error {
	if l.EventID == nil {
		return nil
	}
	if err := s.Registry.WithTx(tx).Revoke(ctx, *l.EventID); err != nil {
		if errors.Is(err, leaveeventerrors.ErrEventNotFound) {
			metrics.LedgerIntegrityFaults.Inc()
			s.logger.Error("ledger integrity fault: event missing",
				zap.String("leave_id", l.ID.String()),
				zap.String("event_id", l.EventID.String()),
			)
			return balanceerrors.ErrLedgerIntegrityFault
		}
		return err
	}
	l.EventID = nil
	return nil
}

func (s *service) announce(ctx context.Context, writes []balanceWrite, l LeaveRequest, from, actorID, reason string) {
	for _, w := range writes {
		s.Ledger.Publish(ctx, w.eventType, balance.OriginRequest, w.balance)
	}
	s.Notifier.RequestTransitioned(ctx, events.LeaveRequestTransitionedEvent{
		EventType:     events.LeaveRequestTransitioned,
		RequestID:     l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		LeaveTypeID:   l.LeaveTypeID.String(),
		FromStatus:    from,
		ToStatus:      l.Status,
		RequestedDays: l.RequestedDays,
		ActorID:       actorID,
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	})
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID, status string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if status != "" && !isKnownStatus(status) {
		return nil, leaveerrors.ErrInvalidStatus
	}
	leaves, err := s.Repo.ListByEmployee(ctx, employeeID, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func validateSubmitRequest(actorID string, req SubmitLeaveRequest) (uuid.UUID, time.Time, time.Time, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(req.LeaveTypeID); err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveTypeID
	}
	startDate, err := dateutil.Parse(req.StartDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := dateutil.Parse(req.EndDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if startDate.After(endDate) {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return actorUUID, startDate, endDate, nil
}
