package leaveevent

import (
	"time"

	"github.com/google/uuid"
)

// Event records that an event-triggered benefit was exercised on a date.
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_event_date,priority:1"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_event_date,priority:2"`
	EventDate   time.Time `gorm:"type:date;not null;uniqueIndex:uq_leave_event_date,priority:3"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
}

func (Event) TableName() string {
	return "leave_events"
}
