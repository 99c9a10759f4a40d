package leavetype

import (
	"time"

	"go-leave/internal/accrual"

	"github.com/google/uuid"
)

type LeaveType struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string         `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_type_name" json:"name"`
	Description       string         `gorm:"type:text" json:"description"`
	IsPaid            bool           `gorm:"not null" json:"is_paid"`
	RequiresApproval  bool           `gorm:"not null" json:"requires_approval"`
	MaxDaysPerYear    *int           `json:"max_days_per_year"`
	MaxDaysPerRequest *int           `json:"max_days_per_request"`
	MinNoticeDays     int            `gorm:"not null" json:"min_notice_days"`
	EventDays         *int           `json:"event_days"`
	SeniorityScaled   bool           `gorm:"not null" json:"seniority_scaled"`
	Classification    Classification `gorm:"type:varchar(20);not null;index" json:"classification"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

// AccrualRule describes how balances of this type earn days.
func (lt LeaveType) AccrualRule() accrual.Rule {
	if lt.Classification == ClassificationAnnual {
		return accrual.Rule{SeniorityScaled: lt.SeniorityScaled, FixedDays: lt.MaxDaysPerYear}
	}
	fixed := lt.EventDays
	if fixed == nil {
		fixed = lt.MaxDaysPerRequest
	}
	return accrual.Rule{FixedDays: fixed}
}
