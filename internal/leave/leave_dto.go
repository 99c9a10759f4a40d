package leave

import (
	"time"

	"go-leave/internal/shared/dateutil"
)

type SubmitLeaveRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID     string `json:"leave_type_id" binding:"required,uuid"`
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	Notes           string `json:"notes" binding:"max=2000"`
	AnniversaryYear *int   `json:"anniversary_year" binding:"omitempty,min=0"`
}

type TransitionLeaveRequest struct {
	Status          string  `json:"status" binding:"required,oneof=APPROVED REJECTED CANCELLED"`
	RejectionReason *string `json:"rejection_reason"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	LeaveTypeID      string  `json:"leave_type_id"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	RequestedDays    int     `json:"requested_days"`
	Notes            string  `json:"notes"`
	Status           string  `json:"status"`
	AnniversaryYear  *int    `json:"anniversary_year,omitempty"`
	BalanceID        *string `json:"balance_id,omitempty"`
	EventID          *string `json:"event_id,omitempty"`
	BalanceAtRequest int     `json:"balance_at_request"`
	CreatedBy        string  `json:"created_by"`
	DecidedBy        *string `json:"decided_by,omitempty"`
	DecidedAt        *string `json:"decided_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:               l.ID.String(),
		EmployeeID:       l.EmployeeID.String(),
		LeaveTypeID:      l.LeaveTypeID.String(),
		StartDate:        dateutil.Format(l.StartDate),
		EndDate:          dateutil.Format(l.EndDate),
		RequestedDays:    l.RequestedDays,
		Notes:            l.Notes,
		Status:           l.Status,
		AnniversaryYear:  l.AnniversaryYear,
		BalanceAtRequest: l.BalanceAtRequest,
		CreatedBy:        l.CreatedBy.String(),
		RejectionReason:  l.RejectionReason,
	}
	if l.BalanceID != nil {
		v := l.BalanceID.String()
		resp.BalanceID = &v
	}
	if l.EventID != nil {
		v := l.EventID.String()
		resp.EventID = &v
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
