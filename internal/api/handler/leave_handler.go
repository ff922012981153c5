package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workfusion/workforce-system/internal/api/metrics"
	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

type LeaveHandler struct {
	leaveService ports.LeaveService
}

func NewLeaveHandler(leaveService ports.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// Submit files a new leave request for the authenticated employee.
//
// @Summary      Submit a leave request
// @Tags         leave
// @Accept       json
// @Produce      json
// @Param        body  body      submitLeaveRequest  true  "Leave request details"
// @Success      201   {object}  leaveRequestResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /leave/submit-leave-request [post]
func (h *LeaveHandler) Submit(c echo.Context) error {
	actorRole, actorEntity, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req submitLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, end, err := req.dates()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actorEntity
	}
	// Employees file for themselves only.
	if actorRole == domain.RoleEmployee && employeeID != actorEntity {
		return domain.ErrForbiddenScope
	}

	created, err := h.leaveService.Submit(c.Request().Context(), ports.SubmitLeaveInput{
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		Reason:     req.Reason,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return err
	}

	metrics.LeaveSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, toLeaveResponse(created))
}

// Accept approves a pending leave request.
//
// @Summary      Approve a leave request
// @Tags         leave
// @Produce      json
// @Param        id         path   string  true  "Leave request id"
// @Param        managerId  query  string  true  "Deciding manager id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /leave/leave-requests/{id}/accept [post]
func (h *LeaveHandler) Accept(c echo.Context) error {
	return h.decide(c, domain.LeaveApproved)
}

// Reject declines a pending leave request.
//
// @Summary      Reject a leave request
// @Tags         leave
// @Produce      json
// @Param        id         path   string  true  "Leave request id"
// @Param        managerId  query  string  true  "Deciding manager id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /leave/leave-requests/{id}/reject [post]
func (h *LeaveHandler) Reject(c echo.Context) error {
	return h.decide(c, domain.LeaveRejected)
}

func (h *LeaveHandler) decide(c echo.Context, outcome domain.LeaveStatus) error {
	actorRole, actorEntity, err := ctxActor(c)
	if err != nil {
		return err
	}

	managerID := c.QueryParam("managerId")
	// A manager may only decide as themselves; the query parameter is kept
	// for contract compatibility, not as an impersonation channel.
	if actorRole == domain.RoleManager && managerID != actorEntity {
		return domain.ErrForbiddenScope
	}

	if err := h.leaveService.Decide(c.Request().Context(), ports.DecideLeaveInput{
		LeaveID:   c.Param("id"),
		ManagerID: managerID,
		Outcome:   outcome,
	}); err != nil {
		return err
	}

	metrics.LeaveDecisionsTotal.WithLabelValues(string(outcome)).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "leave request " + string(outcome)})
}

// ListByEmployee returns an employee's own requests.
//
// @Summary      List an employee's leave requests
// @Tags         leave
// @Produce      json
// @Param        employeeId  path  string  true  "Employee id"
// @Success      200  {array}   leaveRequestResponse
// @Failure      403  {object}  errorResponse
// @Router       /leave/GetEmployeeLeaves/{employeeId} [get]
func (h *LeaveHandler) ListByEmployee(c echo.Context) error {
	actorRole, actorEntity, err := ctxActor(c)
	if err != nil {
		return err
	}

	rows, err := h.leaveService.ListForEmployee(c.Request().Context(), ports.EmployeeLeavesInput{
		EmployeeID:    c.Param("employeeId"),
		ActorRole:     actorRole,
		ActorEntityID: actorEntity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLeaveResponses(rows))
}

// ListByManager returns the manager's combined view: pending requests in the
// manager's department plus requests the manager already decided.
//
// @Summary      List a manager's leave requests
// @Tags         leave
// @Produce      json
// @Param        managerId  path  string  true  "Manager id"
// @Success      200  {array}   leaveRequestResponse
// @Failure      403  {object}  errorResponse
// @Router       /leave/GetLeaveRequestsByManager/{managerId} [get]
func (h *LeaveHandler) ListByManager(c echo.Context) error {
	return h.listManagerView(c, "")
}

// ListPending returns undecided requests in the manager's department.
//
// @Summary      List pending leave requests
// @Tags         leave
// @Produce      json
// @Param        managerId  path  string  true  "Manager id"
// @Success      200  {array}   leaveRequestResponse
// @Failure      403  {object}  errorResponse
// @Router       /leave/manager/{managerId}/pending [get]
func (h *LeaveHandler) ListPending(c echo.Context) error {
	return h.listManagerView(c, domain.LeavePending)
}

// ListApproved returns requests the manager approved.
//
// @Summary      List approved leave requests
// @Tags         leave
// @Produce      json
// @Param        managerId  path  string  true  "Manager id"
// @Success      200  {array}   leaveRequestResponse
// @Failure      403  {object}  errorResponse
// @Router       /leave/manager/{managerId}/approved [get]
func (h *LeaveHandler) ListApproved(c echo.Context) error {
	return h.listManagerView(c, domain.LeaveApproved)
}

// ListRejected returns requests the manager rejected.
//
// @Summary      List rejected leave requests
// @Tags         leave
// @Produce      json
// @Param        managerId  path  string  true  "Manager id"
// @Success      200  {array}   leaveRequestResponse
// @Failure      403  {object}  errorResponse
// @Router       /leave/manager/{managerId}/rejected [get]
func (h *LeaveHandler) ListRejected(c echo.Context) error {
	return h.listManagerView(c, domain.LeaveRejected)
}

func (h *LeaveHandler) listManagerView(c echo.Context, status domain.LeaveStatus) error {
	actorRole, actorEntity, err := ctxActor(c)
	if err != nil {
		return err
	}

	rows, err := h.leaveService.ListForManager(c.Request().Context(), ports.ManagerLeavesInput{
		ManagerID:     c.Param("managerId"),
		Status:        status,
		ActorRole:     actorRole,
		ActorEntityID: actorEntity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLeaveResponses(rows))
}
