// Package http exposes the dispatch engine over a branch-scoped REST API.
// Every route except the health check requires the X-Branch-ID header.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createAssignmentHandler *commands.CreateAssignmentCommandHandler
	autoCreateRoutesHandler *commands.AutoCreateRoutesCommandHandler
	changeStatusHandler     *commands.ChangeAssignmentStatusCommandHandler
	assignCourierHandler    *commands.AssignCourierCommandHandler
	deleteAssignmentHandler *commands.DeleteAssignmentCommandHandler

	getAssignmentHandler   queries.GetAssignmentQueryHandler
	listAssignmentsHandler queries.ListAssignmentsQueryHandler
}

// NewServer creates the HTTP server with its command and query handlers.
func NewServer(
	createAssignmentHandler *commands.CreateAssignmentCommandHandler,
	autoCreateRoutesHandler *commands.AutoCreateRoutesCommandHandler,
	changeStatusHandler *commands.ChangeAssignmentStatusCommandHandler,
	assignCourierHandler *commands.AssignCourierCommandHandler,
	deleteAssignmentHandler *commands.DeleteAssignmentCommandHandler,
	getAssignmentHandler queries.GetAssignmentQueryHandler,
	listAssignmentsHandler queries.ListAssignmentsQueryHandler,
) *Server {
	return &Server{
		createAssignmentHandler: createAssignmentHandler,
		autoCreateRoutesHandler: autoCreateRoutesHandler,
		changeStatusHandler:     changeStatusHandler,
		assignCourierHandler:    assignCourierHandler,
		deleteAssignmentHandler: deleteAssignmentHandler,
		getAssignmentHandler:    getAssignmentHandler,
		listAssignmentsHandler:  listAssignmentsHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1", BranchScope)
	v1.POST("/assignments", s.CreateAssignment)
	v1.POST("/assignments/auto", s.AutoCreateRoutes)
	v1.GET("/assignments", s.ListAssignments)
	v1.GET("/assignments/:assignmentID", s.GetAssignment)
	v1.PATCH("/assignments/:assignmentID/status", s.ChangeAssignmentStatus)
	v1.PUT("/assignments/:assignmentID/courier", s.AssignCourier)
	v1.DELETE("/assignments/:assignmentID", s.DeleteAssignment)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateAssignment handles POST /api/v1/assignments.
func (s *Server) CreateAssignment(ctx echo.Context) error {
	var req CreateAssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var courierID *kernel.UUID
	if req.CourierID != nil {
		id, idErr := kernel.UUIDFromString(*req.CourierID)
		if idErr != nil {
			return badRequest(ctx, "Invalid courier id")
		}
		courierID = &id
	}

	cmd, err := commands.NewCreateAssignmentCommand(branchID(ctx), orderIDs, courierID, req.Name)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	created, err := s.createAssignmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, assignmentFromDomain(created))
}

// AutoCreateRoutes handles POST /api/v1/assignments/auto.
func (s *Server) AutoCreateRoutes(ctx echo.Context) error {
	var req AutoCreateRequest
	if ctx.Request().ContentLength > 0 {
		if err := ctx.Bind(&req); err != nil {
			return badRequest(ctx, "Invalid request body")
		}
	}

	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewAutoCreateRoutesCommand(branchID(ctx), orderIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.autoCreateRoutesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, autoCreateResponseFromResult(result))
}

// ListAssignments handles GET /api/v1/assignments.
func (s *Server) ListAssignments(ctx echo.Context) error {
	query, err := queries.NewListAssignmentsQuery(branchID(ctx), ctx.QueryParam("status"))
	if err != nil {
		return badRequest(ctx, "Invalid status filter")
	}

	assignments, err := s.listAssignmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return businessError(ctx, err)
	}

	response := make([]AssignmentListItem, 0, len(assignments))
	for _, a := range assignments {
		response = append(response, listItemFromQuery(a))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAssignment handles GET /api/v1/assignments/:assignmentID.
func (s *Server) GetAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("assignmentID"))
	if err != nil {
		return badRequest(ctx, "Invalid assignment id")
	}

	query, err := queries.NewGetAssignmentQuery(branchID(ctx), assignmentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.getAssignmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignmentFromQuery(resp))
}

// ChangeAssignmentStatus handles PATCH /api/v1/assignments/:assignmentID/status.
func (s *Server) ChangeAssignmentStatus(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("assignmentID"))
	if err != nil {
		return badRequest(ctx, "Invalid assignment id")
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	action, err := commands.StatusActionFromString(req.Action)
	if err != nil {
		return badRequest(ctx, "Unknown action: "+req.Action)
	}

	cmd, err := commands.NewChangeAssignmentStatusCommand(branchID(ctx), assignmentID, action)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignmentFromDomain(updated))
}

// AssignCourier handles PUT /api/v1/assignments/:assignmentID/courier.
func (s *Server) AssignCourier(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("assignmentID"))
	if err != nil {
		return badRequest(ctx, "Invalid assignment id")
	}

	var req AssignCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewAssignCourierCommand(branchID(ctx), assignmentID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignmentFromDomain(updated))
}

// DeleteAssignment handles DELETE /api/v1/assignments/:assignmentID.
func (s *Server) DeleteAssignment(ctx echo.Context) error {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("assignmentID"))
	if err != nil {
		return badRequest(ctx, "Invalid assignment id")
	}

	cmd, err := commands.NewDeleteAssignmentCommand(branchID(ctx), assignmentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// businessError maps application errors to HTTP responses: missing objects
// become 404, validation and business rule failures become 400, anything
// else is a 500.
func businessError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrNoDeliverableOrders),
		errors.Is(err, commands.ErrNoRoutableOrders),
		errors.Is(err, commands.ErrNoAvailableCouriers),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
