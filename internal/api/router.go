package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lapin-reform/siteops/internal/api/handler"
	"github.com/lapin-reform/siteops/internal/api/middleware"
	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/session"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// Deps collects everything the router wires into handlers. The stores are
// optional; a nil Mongo or Redis client only disables the corresponding
// readiness check.
type Deps struct {
	JWTSecret string
	Sessions  session.Store
	Gateway   *sheet.Client
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger

	Auth       ports.AuthService
	Expenses   ports.ExpenseService
	Attendance ports.AttendanceService
	Reports    ports.ReportService
	Photos     ports.PhotoService
	Meetings   ports.MeetingService
	Projects   ports.ProjectService
	Notices    ports.NoticeService
	Dashboard  ports.DashboardService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("siteops"))

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.Gateway)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	authMiddleware := middleware.Auth(deps.JWTSecret, deps.Sessions)

	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/elevate", authHandler.Elevate, authMiddleware)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Business routes (authenticated, active accounts only) ---
	app := e.Group("", authMiddleware, middleware.ActiveOnly())

	expenseHandler := handler.NewExpenseHandler(deps.Expenses)
	app.POST("/expenses", expenseHandler.Create)
	app.GET("/expenses", expenseHandler.List)
	app.GET("/expenses/summary", expenseHandler.Summary)

	attendanceHandler := handler.NewAttendanceHandler(deps.Attendance)
	app.POST("/attendance", attendanceHandler.Punch)
	app.GET("/attendance", attendanceHandler.Status)

	reportHandler := handler.NewReportHandler(deps.Reports)
	app.POST("/reports", reportHandler.Create)

	photoHandler := handler.NewPhotoHandler(deps.Photos)
	app.POST("/photos", photoHandler.Upload)

	meetingHandler := handler.NewMeetingHandler(deps.Meetings)
	app.POST("/meetings", meetingHandler.Create)
	app.GET("/meetings", meetingHandler.List)
	app.POST("/meetings/format", meetingHandler.Format)

	projectHandler := handler.NewProjectHandler(deps.Projects)
	app.POST("/projects", projectHandler.Create)
	app.GET("/projects", projectHandler.Options)
	app.GET("/employees", projectHandler.Employees)
	app.GET("/company-settings", projectHandler.CompanySettings)

	noticeHandler := handler.NewNoticeHandler(deps.Notices)
	app.GET("/notices", noticeHandler.List)

	// --- Admin routes ---
	admin := e.Group("/admin", authMiddleware, middleware.ActiveOnly(), middleware.RBAC(domain.RoleAdmin))

	admin.POST("/notices", noticeHandler.Create)

	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)
	admin.GET("/dashboard", dashboardHandler.Overview)

	return e
}
