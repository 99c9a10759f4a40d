package leavetype

type DefineLeaveTypeRequest struct {
	Name              string `json:"name" binding:"required,max=100"`
	Description       string `json:"description"`
	IsPaid            *bool  `json:"is_paid" binding:"required"`
	RequiresApproval  *bool  `json:"requires_approval" binding:"required"`
	MaxDaysPerYear    *int   `json:"max_days_per_year" binding:"omitempty,min=0"`
	MaxDaysPerRequest *int   `json:"max_days_per_request" binding:"omitempty,min=1"`
	MinNoticeDays     int    `json:"min_notice_days" binding:"min=0"`
	EventDays         *int   `json:"event_days" binding:"omitempty,min=1"`
	SeniorityScaled   bool   `json:"seniority_scaled"`
	Classification    string `json:"classification" binding:"omitempty,oneof=ANNUAL ONE_TIME EVENT_REPEATABLE"`
}

type LeaveTypeResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	IsPaid            bool   `json:"is_paid"`
	RequiresApproval  bool   `json:"requires_approval"`
	MaxDaysPerYear    *int   `json:"max_days_per_year,omitempty"`
	MaxDaysPerRequest *int   `json:"max_days_per_request,omitempty"`
	MinNoticeDays     int    `json:"min_notice_days"`
	EventDays         *int   `json:"event_days,omitempty"`
	SeniorityScaled   bool   `json:"seniority_scaled"`
	Classification    string `json:"classification"`
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                lt.ID.String(),
		Name:              lt.Name,
		Description:       lt.Description,
		IsPaid:            lt.IsPaid,
		RequiresApproval:  lt.RequiresApproval,
		MaxDaysPerYear:    lt.MaxDaysPerYear,
		MaxDaysPerRequest: lt.MaxDaysPerRequest,
		MinNoticeDays:     lt.MinNoticeDays,
		EventDays:         lt.EventDays,
		SeniorityScaled:   lt.SeniorityScaled,
		Classification:    string(lt.Classification),
	}
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp
}
