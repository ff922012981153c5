package ports

import (
	"context"
	"time"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

// LeaveRepository defines persistence operations for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, req *domain.LeaveRequest) (*domain.LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	// Decide performs the conditional state transition: status, decision_by
	// and decision_date are written in a single update whose filter re-checks
	// that the request is still pending. It returns false when no row was
	// modified: the id is unknown or another decision won the race.
	Decide(ctx context.Context, id, managerID string, status domain.LeaveStatus, at time.Time) (bool, error)
	// ListByEmployee returns the employee's own requests, most recent start
	// date first.
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveRequest, error)
	// ListPendingByDepartment returns undecided requests whose department
	// stamp matches, most recent start date first.
	ListPendingByDepartment(ctx context.Context, departmentID string) ([]*domain.LeaveRequest, error)
	// ListDecidedBy returns requests decided by the given manager. A non-empty
	// status narrows the result to approved or rejected only.
	ListDecidedBy(ctx context.Context, managerID string, status domain.LeaveStatus) ([]*domain.LeaveRequest, error)
}

// SubmitLeaveInput carries an employee's time-off ask. Date ordering is
// validated at the transport schema; the service does not re-check it.
type SubmitLeaveInput struct {
	EmployeeID string
	LeaveType  string
	Reason     string
	StartDate  time.Time
	EndDate    time.Time
}

// DecideLeaveInput carries a manager's decision. Outcome must be
// domain.LeaveApproved or domain.LeaveRejected.
type DecideLeaveInput struct {
	LeaveID   string
	ManagerID string
	Outcome   domain.LeaveStatus
}

// ManagerLeavesInput selects one of the manager views. An empty Status
// returns the combined view: pending requests in the manager's department
// plus requests the manager decided.
type ManagerLeavesInput struct {
	ManagerID string
	Status    domain.LeaveStatus
	// ActorRole and ActorEntityID identify the caller; managers may only
	// query their own views.
	ActorRole     domain.Role
	ActorEntityID string
}

// EmployeeLeavesInput selects an employee's own requests.
type EmployeeLeavesInput struct {
	EmployeeID    string
	ActorRole     domain.Role
	ActorEntityID string
}

// LeaveService owns the leave request state machine.
type LeaveService interface {
	Submit(ctx context.Context, input SubmitLeaveInput) (*domain.LeaveRequest, error)
	Decide(ctx context.Context, input DecideLeaveInput) error
	ListForManager(ctx context.Context, input ManagerLeavesInput) ([]*domain.LeaveRequest, error)
	ListForEmployee(ctx context.Context, input EmployeeLeavesInput) ([]*domain.LeaveRequest, error)
}
