// Package schema owns the table set of the leave engine.
package schema

import (
	"context"
	"fmt"

	"go-leave/internal/balance"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/leaveevent"
	"go-leave/internal/leavetype"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/rbac"
	"go-leave/internal/workday"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Models() []any {
	return []any{
		&employee.Employee{},
		&leavetype.LeaveType{},
		&balance.Balance{},
		&leaveevent.Event{},
		&leave.LeaveRequest{},
		&workday.Holiday{},
		&kafka.OutboxEvent{},
		&rbac.RolePermission{},
		&rbac.RoleParent{},
	}
}

// Migrate creates or updates every table plus the indexes gorm tags cannot
// express. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *gorm.DB, logger ...*zap.Logger) error {
	l := zap.L().Named("schema.migrate")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schema.migrate")
	}

	db = db.WithContext(ctx)
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(leave.ActivePeriodIndexDDL).Error; err != nil {
		return fmt.Errorf("create %s: %w", leave.ActivePeriodIndex, err)
	}

	l.Info("schema migrated", zap.Int("tables", len(Models())))
	return nil
}
