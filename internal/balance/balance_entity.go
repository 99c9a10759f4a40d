package balance

import (
	"time"

	"github.com/google/uuid"
)

// Balance is one ledger row. (employee, leave type, anniversary year) is
// unique; every counter write bumps Version.
type Balance struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_balance_period,priority:1"`
	LeaveTypeID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_balance_period,priority:2;index"`
	AnniversaryYear int        `gorm:"not null;uniqueIndex:uq_balance_period,priority:3"`
	EntitledDays    int        `gorm:"not null"`
	UsedDays        int        `gorm:"not null"`
	PendingDays     int        `gorm:"not null"`
	PeriodStart     time.Time  `gorm:"type:date;not null;index:idx_balance_period_dates,priority:1"`
	PeriodEnd       time.Time  `gorm:"type:date;not null;index:idx_balance_period_dates,priority:2"`
	ExpiresAt       *time.Time `gorm:"type:date"`
	IsEventBased    bool       `gorm:"not null"`
	EventID         *uuid.UUID `gorm:"type:uuid;index"`
	Version         int        `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Balance) TableName() string {
	return "leave_balances"
}

func (b Balance) AvailableDays() int {
	return b.EntitledDays - b.UsedDays - b.PendingDays
}

// Committed is the pending+used figure snapshotted on requests.
func (b Balance) Committed() int {
	return b.PendingDays + b.UsedDays
}

func (b Balance) Idle() bool {
	return b.PendingDays == 0 && b.UsedDays == 0
}
