package domain

import "time"

// LeaveStatus represents the lifecycle state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// validLeaveTransitions defines the allowed state machine transitions.
// Approved and rejected are terminal.
var validLeaveTransitions = map[LeaveStatus][]LeaveStatus{
	LeavePending: {LeaveApproved, LeaveRejected},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s LeaveStatus) CanTransitionTo(next LeaveStatus) bool {
	for _, allowed := range validLeaveTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s LeaveStatus) Terminal() bool {
	return len(validLeaveTransitions[s]) == 0
}

// LeaveRequest is one employee's time-off ask. DepartmentID is the
// employee's department frozen at submission time; a later transfer of the
// employee must not change who may decide an already-submitted request.
// DecisionBy and DecisionDate are set together, exactly once, when the
// request leaves pending. Requests are never physically deleted.
type LeaveRequest struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	EmployeeID   string      `json:"employee_id" bson:"employee_id"`
	EmployeeName string      `json:"employee_name,omitempty" bson:"employee_name,omitempty"`
	DepartmentID string      `json:"department_id" bson:"department_id"`
	LeaveType    string      `json:"leave_type" bson:"leave_type"`
	Reason       string      `json:"reason" bson:"reason"`
	StartDate    time.Time   `json:"start_date" bson:"start_date"`
	EndDate      time.Time   `json:"end_date" bson:"end_date"`
	Status       LeaveStatus `json:"status" bson:"status"`
	DecisionBy   string      `json:"decision_by,omitempty" bson:"decision_by,omitempty"`
	DecisionDate *time.Time  `json:"decision_date,omitempty" bson:"decision_date,omitempty"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
}
