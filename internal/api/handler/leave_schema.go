package handler

import (
	"fmt"
	"time"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

const dateLayout = "2006-01-02"

type submitLeaveRequest struct {
	// EmployeeID is optional; when empty the caller's own entity id is used.
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type" validate:"required"`
	Reason     string `json:"reason"     validate:"required"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

// dates parses and orders the leave window. The schema validates the layout;
// ordering is the one rule the tags cannot express.
func (r *submitLeaveRequest) dates() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err = time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date must not precede start_date")
	}
	return start, end, nil
}

type leaveRequestResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name,omitempty"`
	DepartmentID string     `json:"department_id"`
	LeaveType    string     `json:"leave_type"`
	Reason       string     `json:"reason"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	Status       string     `json:"status"`
	DecisionBy   string     `json:"decision_by,omitempty"`
	DecisionDate *time.Time `json:"decision_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toLeaveResponse(r *domain.LeaveRequest) leaveRequestResponse {
	return leaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		DepartmentID: r.DepartmentID,
		LeaveType:    r.LeaveType,
		Reason:       r.Reason,
		StartDate:    r.StartDate.Format(dateLayout),
		EndDate:      r.EndDate.Format(dateLayout),
		Status:       string(r.Status),
		DecisionBy:   r.DecisionBy,
		DecisionDate: r.DecisionDate,
		CreatedAt:    r.CreatedAt,
	}
}

func toLeaveResponses(rows []*domain.LeaveRequest) []leaveRequestResponse {
	out := make([]leaveRequestResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toLeaveResponse(r))
	}
	return out
}
