package events

import "time"

const LeaveRequestTopic = "hr.leave.request.v1"

const LeaveRequestTransitioned = "LEAVE_REQUEST_TRANSITIONED"

type LeaveRequestTransitionedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id"`
	EmployeeID    string    `json:"employee_id"`
	LeaveTypeID   string    `json:"leave_type_id"`
	FromStatus    string    `json:"from_status,omitempty"`
	ToStatus      string    `json:"to_status"`
	RequestedDays int       `json:"requested_days"`
	ActorID       string    `json:"actor_id"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
