package leaveevent

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaveevent_repo.go -destination=mock/leaveevent_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Event) error
	LockBenefit(ctx context.Context, employeeID, leaveTypeID string) error
	ExistsFor(ctx context.Context, employeeID, leaveTypeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// LockBenefit serialises one-time checks for an (employee, leave type) pair
// until the surrounding transaction ends. Events carry no row to lock before
// the first one exists, so postgres takes a transaction-scoped advisory lock.
// SQLite already serialises writers.
func (r *repository) LockBenefit(ctx context.Context, employeeID, leaveTypeID string) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", employeeID+":"+leaveTypeID).
		Error
}

func (r *repository) ExistsFor(ctx context.Context, employeeID, leaveTypeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Event{}).
		Where("employee_id = ? AND leave_type_id = ?", employeeID, leaveTypeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Event{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
