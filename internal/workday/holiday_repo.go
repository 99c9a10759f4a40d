package workday

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	ListRelevant(ctx context.Context, from, to time.Time) ([]Holiday, error)
	Create(ctx context.Context, h *Holiday) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListRelevant returns the one-off holidays inside [from, to] together
// with every recurring one.
func (r *repository) ListRelevant(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("(date >= ? AND date <= ?) OR recurring = ?", from, to, true).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}
