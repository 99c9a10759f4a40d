package employee

import (
	"context"

	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Directory is the read side the ledger needs from the HR system, plus the
// projection write used by the lifecycle consumer.
//
//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Directory interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Sync(ctx context.Context, e Employee) error
}

type directory struct {
	repo   Repository
	logger *zap.Logger
}

func NewDirectory(repo Repository, logger ...*zap.Logger) Directory {
	l := zap.L().Named("employee.directory")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.directory")
	}
	return &directory{repo: repo, logger: l}
}

func (d *directory) GetByID(ctx context.Context, id string) (Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Employee{}, employeeerrors.ErrInvalidEmployeeID
	}
	e, err := d.repo.FindByID(ctx, id)
	if err != nil {
		return Employee{}, mapRepositoryError(err)
	}
	return *e, nil
}

func (d *directory) ListActive(ctx context.Context) ([]Employee, error) {
	return d.repo.ListActive(ctx)
}

func (d *directory) Sync(ctx context.Context, e Employee) error {
	if e.ID == uuid.Nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	e.HireDate = dateutil.Truncate(e.HireDate)
	if err := d.repo.Upsert(ctx, &e); err != nil {
		d.logger.Error("sync employee failed", zap.String("employee_id", e.ID.String()), zap.Error(err))
		return mapRepositoryError(err)
	}
	d.logger.Info("employee synced",
		zap.String("employee_id", e.ID.String()),
		zap.Bool("is_active", e.IsActive),
	)
	return nil
}
