package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/workfusion/workforce-system/internal/api/handler"
	"github.com/workfusion/workforce-system/internal/api/middleware"
	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

// Dependencies carries everything the router needs; services are constructed
// and wired in main.
type Dependencies struct {
	JWTSecret string
	Logger    zerolog.Logger

	Auth          ports.AuthService
	Leave         ports.LeaveService
	Notifications ports.NotificationService
	Reset         ports.PasswordResetService

	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("workforce"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	resetHandler := handler.NewPasswordResetHandler(deps.Reset)
	leaveHandler := handler.NewLeaveHandler(deps.Leave)
	notificationHandler := handler.NewNotificationHandler(deps.Notifications)

	authMW := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/authenticate", authHandler.Authenticate)
	e.POST("/auth/register", authHandler.Register, authMW, middleware.RBAC(domain.RoleAdmin))
	e.POST("/auth/forgot-password", resetHandler.ForgotPassword)
	e.POST("/auth/reset-password", resetHandler.ResetPassword)

	// --- Leave workflow routes (paths kept verbatim from the external
	// contract, mixed naming included) ---
	leave := e.Group("/leave", authMW)
	leave.POST("/submit-leave-request", leaveHandler.Submit, middleware.RBAC(domain.RoleEmployee))
	leave.GET("/GetEmployeeLeaves/:employeeId", leaveHandler.ListByEmployee, middleware.RBAC(domain.RoleEmployee, domain.RoleAdmin))
	leave.GET("/GetLeaveRequestsByManager/:managerId", leaveHandler.ListByManager, middleware.RBAC(domain.RoleManager, domain.RoleAdmin))
	leave.GET("/manager/:managerId/pending", leaveHandler.ListPending, middleware.RBAC(domain.RoleManager, domain.RoleAdmin))
	leave.GET("/manager/:managerId/approved", leaveHandler.ListApproved, middleware.RBAC(domain.RoleManager, domain.RoleAdmin))
	leave.GET("/manager/:managerId/rejected", leaveHandler.ListRejected, middleware.RBAC(domain.RoleManager, domain.RoleAdmin))
	leave.POST("/leave-requests/:id/accept", leaveHandler.Accept, middleware.RBAC(domain.RoleManager))
	leave.POST("/leave-requests/:id/reject", leaveHandler.Reject, middleware.RBAC(domain.RoleManager))

	// --- Notification routes ---
	notifications := e.Group("/notifications", authMW)
	notifications.GET("/:entityId/:roleId", notificationHandler.List)
	notifications.GET("/:entityId/:roleId/unread-count", notificationHandler.UnreadCount)
	notifications.POST("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
