package leavetype

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id string) (*LeaveType, error)
	FindAll(ctx context.Context) ([]LeaveType, error)
	FindByClassification(ctx context.Context, c Classification) ([]LeaveType, error)
	Save(ctx context.Context, lt *LeaveType) error
	CountBalances(ctx context.Context, leaveTypeID string) (int64, error)
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

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindByClassification(ctx context.Context, c Classification) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Where("classification = ?", c).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) Save(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}

func (r *repository) CountBalances(ctx context.Context, leaveTypeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_balances").
		Where("leave_type_id = ?", leaveTypeID).
		Count(&count).Error
	return count, err
}
