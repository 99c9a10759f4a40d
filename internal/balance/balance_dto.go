package balance

import "go-leave/internal/shared/dateutil"

type EnsureBalanceRequest struct {
	LeaveTypeID     string `json:"leave_type_id" binding:"required,uuid"`
	AnniversaryYear *int   `json:"anniversary_year" binding:"omitempty,min=0"`
}

type BalanceResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	AnniversaryYear int     `json:"anniversary_year"`
	EntitledDays    int     `json:"entitled_days"`
	UsedDays        int     `json:"used_days"`
	PendingDays     int     `json:"pending_days"`
	AvailableDays   int     `json:"available_days"`
	PeriodStart     string  `json:"period_start"`
	PeriodEnd       string  `json:"period_end"`
	ExpiresAt       *string `json:"expires_at,omitempty"`
	IsEventBased    bool    `json:"is_event_based"`
	EventID         *string `json:"event_id,omitempty"`
}

type EnsureBalanceResponse struct {
	Created bool            `json:"created"`
	Balance BalanceResponse `json:"balance"`
}

func mapToResponse(b Balance) BalanceResponse {
	resp := BalanceResponse{
		ID:              b.ID.String(),
		EmployeeID:      b.EmployeeID.String(),
		LeaveTypeID:     b.LeaveTypeID.String(),
		AnniversaryYear: b.AnniversaryYear,
		EntitledDays:    b.EntitledDays,
		UsedDays:        b.UsedDays,
		PendingDays:     b.PendingDays,
		AvailableDays:   b.AvailableDays(),
		PeriodStart:     dateutil.Format(b.PeriodStart),
		PeriodEnd:       dateutil.Format(b.PeriodEnd),
		IsEventBased:    b.IsEventBased,
	}
	if b.ExpiresAt != nil {
		v := dateutil.Format(*b.ExpiresAt)
		resp.ExpiresAt = &v
	}
	if b.EventID != nil {
		v := b.EventID.String()
		resp.EventID = &v
	}
	return resp
}

func mapToListResponse(balances []Balance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp
}
