package leave

import (
	"time"

	"github.com/google/uuid"
)

// LeaveRequest links a requested period to the balance row it draws on.
// The (employee, leave type, start, end) unique index is partial: it only
// covers requests that are still PENDING or APPROVED.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates,priority:1"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;index"`

	StartDate     time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates,priority:2"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates,priority:3"`
	RequestedDays int       `gorm:"not null"`
	Notes         string    `gorm:"type:text"`

	Status           string     `gorm:"type:varchar(20);not null;index"`
	AnniversaryYear  *int
	BalanceID        *uuid.UUID `gorm:"type:uuid;index"`
	EventID          *uuid.UUID `gorm:"type:uuid"`
	BalanceAtRequest int        `gorm:"not null"`

	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	DecidedBy       *uuid.UUID `gorm:"type:uuid"`
	DecidedAt       *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// ActivePeriodIndex is the partial unique index guarding duplicate
// submissions for the same period.
const ActivePeriodIndex = "uq_leave_request_period"

const ActivePeriodIndexDDL = `CREATE UNIQUE INDEX IF NOT EXISTS ` + ActivePeriodIndex + `
ON leave_requests (employee_id, leave_type_id, start_date, end_date)
WHERE status IN ('PENDING', 'APPROVED')`
