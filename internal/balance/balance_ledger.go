package balance

import (
	"context"
	"errors"
	"time"

	"go-leave/internal/accrual"
	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/employee"
	"go-leave/internal/events"
	"go-leave/internal/leavetype"
	"go-leave/internal/notification"
	"go-leave/internal/shared/dateutil"
	"go-leave/internal/shared/dberr"
	"go-leave/internal/shared/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	OriginAPI     = "api"
	OriginSweep   = "sweep"
	OriginRequest = "request"
)

// Delta is a signed change to the pending and used counters of a balance.
type Delta struct {
	Pending int
	Used    int
}

// Change pairs a balance row as read under lock with what was written back.
type Change struct {
	Before Balance
	After  Balance
}

// Ledger holds the read-modify-write operations on balance rows. Every
// method runs against the repository it is given, so callers bind it to
// their own transaction with Repository.WithTx.
type Ledger struct {
	calc     *accrual.Calculator
	notifier notification.Notifier
	logger   *zap.Logger
}

func NewLedger(calc *accrual.Calculator, notifier notification.Notifier, logger ...*zap.Logger) *Ledger {
	l := zap.L().Named("balance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.ledger")
	}
	if notifier == nil {
		notifier = notification.Nop()
	}
	return &Ledger{calc: calc, notifier: notifier, logger: l}
}

func (l *Ledger) Calculator() *accrual.Calculator {
	return l.calc
}

// TargetYear returns the anniversary year an annual balance may be opened
// for as of today: the current one, or an explicit year no more than one
// ahead of it.
func (l *Ledger) TargetYear(hire, today time.Time, explicit *int) (int, error) {
	if explicit != nil && *explicit < 0 {
		return 0, balanceerrors.ErrInvalidAnniversaryYear
	}
	current, ok := l.calc.MaxAnniversaryYear(hire, today)
	if !ok {
		return 0, balanceerrors.ErrNotYetEligible
	}
	if explicit == nil {
		return current, nil
	}
	if *explicit > current+1 {
		return 0, balanceerrors.ErrYearNotReached
	}
	return *explicit, nil
}

// Ensure returns the annual balance for (employee, leave type, year),
// creating it from the accrual rule when it does not exist yet. An
// existing row is returned untouched.
func (l *Ledger) Ensure(ctx context.Context, repo Repository, emp employee.Employee, lt leavetype.LeaveType, year int) (*Balance, bool, error) {
	if lt.Classification != leavetype.ClassificationAnnual {
		return nil, false, balanceerrors.ErrNotAnnualLeaveType
	}
	if year < 0 {
		return nil, false, balanceerrors.ErrInvalidAnniversaryYear
	}
	entitled, ok := l.calc.Entitlement(lt.AccrualRule(), year)
	if !ok {
		return nil, false, balanceerrors.ErrNoEntitlement
	}

	period := l.calc.Period(emp.HireDate, year)
	b := &Balance{
		ID:              uuid.New(),
		EmployeeID:      emp.ID,
		LeaveTypeID:     lt.ID,
		AnniversaryYear: year,
		EntitledDays:    entitled,
		PeriodStart:     period.Start,
		PeriodEnd:       period.End,
	}

	created, err := repo.CreateIfAbsent(ctx, b)
	if err != nil {
		return nil, false, err
	}
	if created {
		l.logger.Debug("balance created",
			zap.String("employee_id", emp.ID.String()),
			zap.String("leave_type_id", lt.ID.String()),
			zap.Int("anniversary_year", year),
			zap.Int("entitled_days", entitled),
		)
		return b, true, nil
	}

	existing, err := repo.FindByKey(ctx, emp.ID.String(), lt.ID.String(), year)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Adjust applies d to the pending and used counters of balance id. A
// missing row or a counter driven below zero is an integrity fault and is
// never repaired here.
func (l *Ledger) Adjust(ctx context.Context, repo Repository, id string, d Delta) (Change, error) {
	return l.mutate(ctx, repo, id, func(b *Balance) {
		b.PendingDays += d.Pending
		b.UsedDays += d.Used
	})
}

// ApplyEventApproval moves an event-based grant from pending to used in full.
func (l *Ledger) ApplyEventApproval(ctx context.Context, repo Repository, id string) (Change, error) {
	return l.mutate(ctx, repo, id, func(b *Balance) {
		b.PendingDays = 0
		b.UsedDays = b.EntitledDays
	})
}

// ResetEvent clears both counters of an event-based balance while keeping
// the row. detachEvent also drops the link to its event.
func (l *Ledger) ResetEvent(ctx context.Context, repo Repository, id string, detachEvent bool) (Change, error) {
	return l.mutate(ctx, repo, id, func(b *Balance) {
		b.PendingDays = 0
		b.UsedDays = 0
		if detachEvent {
			b.EventID = nil
		}
	})
}

// OpenEventBalance books a fresh event-based grant for a request spanning
// [start, end]. The row is keyed by the service year the event falls in;
// an idle row under that key is reused, a busy one is refused.
func (l *Ledger) OpenEventBalance(
	ctx context.Context,
	repo Repository,
	emp employee.Employee,
	lt leavetype.LeaveType,
	start, end time.Time,
	requestedDays int,
	eventID uuid.UUID,
) (Change, error) {
	year := l.calc.CompletedYears(emp.HireDate, start)
	entitled := l.calc.EventEntitlement(lt.AccrualRule(), requestedDays)
	period := l.calc.EventPeriod(start, end)

	existing, err := repo.FindByKey(ctx, emp.ID.String(), lt.ID.String(), year)
	if err != nil && !dberr.IsNotFound(err) {
		return Change{}, err
	}
	if existing != nil {
		if !existing.Idle() {
			return Change{}, balanceerrors.ErrEventBalanceInUse
		}
		eid := eventID
		return l.mutate(ctx, repo, existing.ID.String(), func(b *Balance) {
			b.EntitledDays = entitled
			b.PendingDays = entitled
			b.UsedDays = 0
			b.PeriodStart = period.Start
			b.PeriodEnd = period.End
			b.IsEventBased = true
			b.EventID = &eid
		})
	}

	eid := eventID
	b := &Balance{
		ID:              uuid.New(),
		EmployeeID:      emp.ID,
		LeaveTypeID:     lt.ID,
		AnniversaryYear: year,
		EntitledDays:    entitled,
		PendingDays:     entitled,
		PeriodStart:     period.Start,
		PeriodEnd:       period.End,
		IsEventBased:    true,
		EventID:         &eid,
	}
	created, err := repo.CreateIfAbsent(ctx, b)
	if err != nil {
		return Change{}, err
	}
	if !created {
		metrics.ConcurrencyConflicts.WithLabelValues("balance").Inc()
		return Change{}, balanceerrors.ErrConcurrencyConflict
	}
	return Change{After: *b}, nil
}

// Remove deletes an event-based balance whose request was withdrawn.
func (l *Ledger) Remove(ctx context.Context, repo Repository, id string) (Balance, error) {
	b, err := repo.FindByIDForUpdate(ctx, id)
	if err != nil {
		return Balance{}, l.lookupError(id, err)
	}
	n, err := repo.Delete(ctx, id)
	if err != nil {
		return Balance{}, err
	}
	if n == 0 {
		return Balance{}, l.fault(id, "balance vanished before delete")
	}
	return *b, nil
}

// Publish announces a committed ledger write. Call it after the
// transaction that made the write has committed.
func (l *Ledger) Publish(ctx context.Context, eventType, origin string, b Balance) {
	if eventType == events.BalanceCreated {
		metrics.BalancesCreated.WithLabelValues(origin).Inc()
	}
	var expires string
	if b.ExpiresAt != nil {
		expires = dateutil.Format(*b.ExpiresAt)
	}
	l.notifier.BalanceChanged(ctx, events.BalanceChangedEvent{
		EventType:       eventType,
		BalanceID:       b.ID.String(),
		EmployeeID:      b.EmployeeID.String(),
		LeaveTypeID:     b.LeaveTypeID.String(),
		AnniversaryYear: b.AnniversaryYear,
		EntitledDays:    b.EntitledDays,
		UsedDays:        b.UsedDays,
		PendingDays:     b.PendingDays,
		PeriodStart:     dateutil.Format(b.PeriodStart),
		PeriodEnd:       dateutil.Format(b.PeriodEnd),
		ExpiresAt:       expires,
		IsEventBased:    b.IsEventBased,
		Origin:          origin,
		OccurredAt:      time.Now().UTC(),
	})
}

func (l *Ledger) mutate(ctx context.Context, repo Repository, id string, apply func(b *Balance)) (Change, error) {
	b, err := repo.FindByIDForUpdate(ctx, id)
	if err != nil {
		return Change{}, l.lookupError(id, err)
	}
	before := *b

	apply(b)
	if b.PendingDays < 0 || b.UsedDays < 0 {
		return Change{}, l.fault(id, "counter would go negative",
			zap.Int("pending_days", b.PendingDays),
			zap.Int("used_days", b.UsedDays),
		)
	}
	if !b.IsEventBased && b.PendingDays+b.UsedDays > b.EntitledDays {
		return Change{}, balanceerrors.ErrInsufficientBalance
	}

	if err := repo.Update(ctx, b); err != nil {
		if errors.Is(err, ErrStaleVersion) {
			metrics.ConcurrencyConflicts.WithLabelValues("balance").Inc()
			l.logger.Warn("balance version conflict", zap.String("balance_id", id), zap.Int("version", before.Version))
			return Change{}, balanceerrors.ErrConcurrencyConflict
		}
		return Change{}, err
	}
	return Change{Before: before, After: *b}, nil
}

func (l *Ledger) lookupError(id string, err error) error {
	if dberr.IsNotFound(err) {
		return l.fault(id, "balance row missing")
	}
	return err
}

func (l *Ledger) fault(id, reason string, fields ...zap.Field) error {
	metrics.LedgerIntegrityFaults.Inc()
	l.logger.Error("ledger integrity fault",
		append([]zap.Field{zap.String("balance_id", id), zap.String("reason", reason)}, fields...)...,
	)
	return balanceerrors.ErrLedgerIntegrityFault
}
