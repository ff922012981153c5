package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

// LeaveService owns the leave request state machine: pending is the only
// initial state, approved and rejected are terminal, and the conditional
// update in Decide is the sole concurrency control.
type LeaveService struct {
	leaves   ports.LeaveRepository
	profiles ports.ProfileRepository
	scopes   ports.ScopeResolver
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewLeaveService(
	leaves ports.LeaveRepository,
	profiles ports.ProfileRepository,
	scopes ports.ScopeResolver,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *LeaveService {
	return &LeaveService{
		leaves:   leaves,
		profiles: profiles,
		scopes:   scopes,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit creates a new pending request, stamping the employee's current
// department onto it. The stamp, not the employee's live department, is
// what authorizes a later decision, so a transfer after submission cannot
// change who may decide the request.
func (s *LeaveService) Submit(ctx context.Context, input ports.SubmitLeaveInput) (*domain.LeaveRequest, error) {
	if input.EmployeeID == "" || input.LeaveType == "" {
		return nil, domain.ErrValidation
	}

	profile, err := s.profiles.FindByEntity(ctx, domain.RoleEmployee, input.EmployeeID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("%w: no department on file for employee", domain.ErrValidation)
		}
		return nil, fmt.Errorf("submit leave: %w", err)
	}
	member, ok := profile.(domain.DepartmentMember)
	if !ok || member.Department() == "" {
		return nil, fmt.Errorf("%w: no department on file for employee", domain.ErrValidation)
	}

	req := &domain.LeaveRequest{
		EmployeeID:   input.EmployeeID,
		EmployeeName: profile.FullName(),
		DepartmentID: member.Department(),
		LeaveType:    input.LeaveType,
		Reason:       input.Reason,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       domain.LeavePending,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.leaves.Create(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Str("employee_id", input.EmployeeID).Msg("failed to create leave request")
		return nil, err
	}

	s.logger.Info().
		Str("leave_id", created.ID).
		Str("employee_id", created.EmployeeID).
		Str("department_id", created.DepartmentID).
		Msg("leave request submitted")

	return created, nil
}

// Decide transitions a pending request to approved or rejected. The acting
// manager's department must match the request's department stamp; the
// conditional update then guarantees at most one winner across concurrent
// decisions. The loser observes zero modified rows and gets
// ErrLeaveNotFound, indistinguishable from an unknown id.
func (s *LeaveService) Decide(ctx context.Context, input ports.DecideLeaveInput) error {
	if input.ManagerID == "" {
		return fmt.Errorf("%w: manager id is required for a decision", domain.ErrValidation)
	}
	if input.Outcome != domain.LeaveApproved && input.Outcome != domain.LeaveRejected {
		return fmt.Errorf("%w: outcome must be approved or rejected", domain.ErrValidation)
	}

	scope, err := s.scopes.ResolveScope(ctx, domain.RoleManager, input.ManagerID)
	if err != nil {
		return fmt.Errorf("decide leave: %w", err)
	}

	req, err := s.leaves.FindByID(ctx, input.LeaveID)
	if err != nil {
		return err
	}

	// The listing views keep out-of-department requests invisible, but
	// visibility alone would not stop a guessed id; the stamp is re-checked
	// here before the update.
	if !scope.All && req.DepartmentID != scope.DepartmentID {
		return domain.ErrForbiddenScope
	}

	if !req.Status.CanTransitionTo(input.Outcome) {
		return domain.ErrLeaveNotFound
	}

	now := time.Now().UTC()
	won, err := s.leaves.Decide(ctx, input.LeaveID, input.ManagerID, input.Outcome, now)
	if err != nil {
		return fmt.Errorf("decide leave: %w", err)
	}
	if !won {
		return domain.ErrLeaveNotFound
	}

	s.logger.Info().
		Str("leave_id", input.LeaveID).
		Str("manager_id", input.ManagerID).
		Str("outcome", string(input.Outcome)).
		Msg("leave request decided")

	// Fire-and-forget: the decision has already committed, a notification
	// failure is logged and swallowed.
	msg := fmt.Sprintf("Your leave request (%s, %s to %s) has been %s.",
		req.LeaveType,
		req.StartDate.Format("2006-01-02"),
		req.EndDate.Format("2006-01-02"),
		input.Outcome,
	)
	if _, err := s.notifier.Notify(ctx, req.EmployeeID, domain.RoleEmployee, msg); err != nil {
		s.logger.Warn().Err(err).Str("leave_id", input.LeaveID).Msg("failed to queue decision notification")
	}

	return nil
}

// ListForManager returns one of the manager views. The pending view matches
// on the department stamp; the approved and rejected views additionally
// require decision_by = managerID, so a manager who inherits a department
// does not see a predecessor's decisions. Every view drops rows whose
// employee has since moved to another department.
func (s *LeaveService) ListForManager(ctx context.Context, input ports.ManagerLeavesInput) ([]*domain.LeaveRequest, error) {
	if input.ActorRole == domain.RoleManager && input.ActorEntityID != input.ManagerID {
		return nil, domain.ErrForbiddenScope
	}

	scope, err := s.scopes.ResolveScope(ctx, domain.RoleManager, input.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("list manager leaves: %w", err)
	}

	var rows []*domain.LeaveRequest
	switch input.Status {
	case domain.LeavePending:
		rows, err = s.leaves.ListPendingByDepartment(ctx, scope.DepartmentID)
	case domain.LeaveApproved, domain.LeaveRejected:
		rows, err = s.leaves.ListDecidedBy(ctx, input.ManagerID, input.Status)
	default:
		pending, perr := s.leaves.ListPendingByDepartment(ctx, scope.DepartmentID)
		if perr != nil {
			return nil, fmt.Errorf("list manager leaves: %w", perr)
		}
		decided, derr := s.leaves.ListDecidedBy(ctx, input.ManagerID, "")
		if derr != nil {
			return nil, fmt.Errorf("list manager leaves: %w", derr)
		}
		rows = append(pending, decided...)
	}
	if err != nil {
		return nil, fmt.Errorf("list manager leaves: %w", err)
	}

	return s.filterByCurrentDepartment(ctx, rows, scope.DepartmentID), nil
}

// filterByCurrentDepartment keeps only rows whose employee is presently in
// the given department, mirroring the employee join in the original views.
func (s *LeaveService) filterByCurrentDepartment(ctx context.Context, rows []*domain.LeaveRequest, departmentID string) []*domain.LeaveRequest {
	out := make([]*domain.LeaveRequest, 0, len(rows))
	for _, r := range rows {
		profile, err := s.profiles.FindByEntity(ctx, domain.RoleEmployee, r.EmployeeID)
		if err != nil {
			continue
		}
		member, ok := profile.(domain.DepartmentMember)
		if !ok || member.Department() != departmentID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ListForEmployee returns the employee's own requests, most recent start
// date first. Employees may only list themselves; admins may list anyone.
func (s *LeaveService) ListForEmployee(ctx context.Context, input ports.EmployeeLeavesInput) ([]*domain.LeaveRequest, error) {
	if input.ActorRole != domain.RoleAdmin && input.ActorEntityID != input.EmployeeID {
		return nil, domain.ErrForbiddenScope
	}
	rows, err := s.leaves.ListByEmployee(ctx, input.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("list employee leaves: %w", err)
	}
	return rows, nil
}
