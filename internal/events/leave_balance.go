package events

import "time"

const LeaveBalanceTopic = "hr.leave.balance.v1"

const (
	BalanceCreated = "BALANCE_CREATED"
	BalanceUpdated = "BALANCE_UPDATED"
	BalanceDeleted = "BALANCE_DELETED"
)

type BalanceChangedEvent struct {
	EventType       string    `json:"event_type"`
	BalanceID       string    `json:"balance_id"`
	EmployeeID      string    `json:"employee_id"`
	LeaveTypeID     string    `json:"leave_type_id"`
	AnniversaryYear int       `json:"anniversary_year"`
	EntitledDays    int       `json:"entitled_days"`
	UsedDays        int       `json:"used_days"`
	PendingDays     int       `json:"pending_days"`
	PeriodStart     string    `json:"period_start"`
	PeriodEnd       string    `json:"period_end"`
	ExpiresAt       string    `json:"expires_at,omitempty"`
	IsEventBased    bool      `json:"is_event_based"`
	Origin          string    `json:"origin"`
	OccurredAt      time.Time `json:"occurred_at"`
}
