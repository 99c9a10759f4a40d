package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeHired      = "EMPLOYEE_HIRED"
	EmployeeUpdated    = "EMPLOYEE_UPDATED"
	EmployeeTerminated = "EMPLOYEE_TERMINATED"
)

// EmployeeLifecycleEvent is published by the HR system whenever an employee
// record changes. HireDate is YYYY-MM-DD.
type EmployeeLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	TaxID      string    `json:"tax_id"`
	FullName   string    `json:"full_name"`
	HireDate   string    `json:"hire_date"`
	IsActive   bool      `json:"is_active"`
	OccurredAt time.Time `json:"occurred_at"`
}
