package balance

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStaleVersion is returned by Update when the row changed since it was read.
var ErrStaleVersion = errors.New("balance version is stale")

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateIfAbsent(ctx context.Context, b *Balance) (bool, error)
	FindByID(ctx context.Context, id string) (*Balance, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Balance, error)
	FindByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (*Balance, error)
	FindContaining(ctx context.Context, employeeID, leaveTypeID string, d time.Time) (*Balance, error)
	FindLatest(ctx context.Context, employeeID, leaveTypeID string) (*Balance, error)
	ListYears(ctx context.Context, employeeID, leaveTypeID string) ([]int, error)
	ListByEmployee(ctx context.Context, employeeID string, asOf *time.Time) ([]Balance, error)
	Update(ctx context.Context, b *Balance) error
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// locking adds FOR UPDATE where the dialect has it. SQLite serialises
// writers on its own.
func (r *repository) locking(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// CreateIfAbsent inserts b unless its (employee, leave type, year) key
// already exists. It reports whether a row was written.
func (r *repository) CreateIfAbsent(ctx context.Context, b *Balance) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "leave_type_id"}, {Name: "anniversary_year"}},
			DoNothing: true,
		}).
		Create(b)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Balance, error) {
	var b Balance
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Balance, error) {
	var b Balance
	if err := r.locking(r.db.WithContext(ctx)).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (*Balance, error) {
	var b Balance
	err := r.locking(r.db.WithContext(ctx)).
		Where("employee_id = ? AND leave_type_id = ? AND anniversary_year = ?", employeeID, leaveTypeID, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindContaining(ctx context.Context, employeeID, leaveTypeID string, d time.Time) (*Balance, error) {
	var b Balance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND leave_type_id = ?", employeeID, leaveTypeID).
		Where("is_event_based = ?", false).
		Where("period_start <= ? AND period_end >= ?", d, d).
		Order("anniversary_year DESC").
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindLatest(ctx context.Context, employeeID, leaveTypeID string) (*Balance, error) {
	var b Balance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND leave_type_id = ?", employeeID, leaveTypeID).
		Where("is_event_based = ?", false).
		Order("anniversary_year DESC").
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListYears(ctx context.Context, employeeID, leaveTypeID string) ([]int, error) {
	var years []int
	err := r.db.WithContext(ctx).
		Model(&Balance{}).
		Where("employee_id = ? AND leave_type_id = ?", employeeID, leaveTypeID).
		Order("anniversary_year ASC").
		Pluck("anniversary_year", &years).Error
	return years, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string, asOf *time.Time) ([]Balance, error) {
	var balances []Balance
	q := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if asOf != nil {
		q = q.Where("period_start <= ? AND period_end >= ?", *asOf, *asOf)
	}
	err := q.Order("leave_type_id ASC, anniversary_year ASC").Find(&balances).Error
	return balances, err
}

// Update writes every mutable column if the stored version still matches
// b.Version, then advances b.Version.
func (r *repository) Update(ctx context.Context, b *Balance) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&Balance{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]any{
			"entitled_days":  b.EntitledDays,
			"used_days":      b.UsedDays,
			"pending_days":   b.PendingDays,
			"period_start":   b.PeriodStart,
			"period_end":     b.PeriodEnd,
			"expires_at":     b.ExpiresAt,
			"is_event_based": b.IsEventBased,
			"event_id":       b.EventID,
			"version":        gorm.Expr("version + 1"),
			"updated_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}
	b.Version++
	b.UpdatedAt = now
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Balance{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
