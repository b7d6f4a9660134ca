package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studentms/portal-gateway/internal/api/handler"
	"github.com/studentms/portal-gateway/internal/api/middleware"
	"github.com/studentms/portal-gateway/internal/core/domain"
	"github.com/studentms/portal-gateway/internal/core/ports"
	"github.com/studentms/portal-gateway/internal/core/service"
)

// Deps bundles everything the router needs wired in.
type Deps struct {
	Sessions *service.SessionService
	Guard    *service.Guard
	Stores   ports.SessionStores
	Marks    ports.ReadMarkStore
	Activity ports.ActivityLog

	Mongo *mongo.Database
	Redis *redis.Client

	CookieName string
	SessionTTL time.Duration
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Route-guard policies ---
	// Non-strict everywhere: higher privileges reach downward. The activity
	// log is the exception: strict admin-only, no cascade applies anyway.
	adminPolicy := domain.RoutePolicy{RequiredRoles: domain.RoleSet{domain.RoleAdmin}}
	moderatorPolicy := domain.RoutePolicy{RequiredRoles: domain.RoleSet{domain.RoleModerator}}
	studentPolicy := domain.RoutePolicy{RequiredRoles: domain.RoleSet{domain.RoleStudent, domain.RoleUser}}
	anyUserPolicy := domain.RoutePolicy{RequiredRoles: domain.RoleSet{domain.RoleUser}}
	activityPolicy := domain.RoutePolicy{RequiredRoles: domain.RoleSet{domain.RoleAdmin}, Strict: true}

	guardFor := func(policy domain.RoutePolicy) echo.MiddlewareFunc {
		return middleware.Guard(d.Guard, d.Stores, d.CookieName, policy)
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Sessions, d.Stores, d.CookieName, d.SessionTTL)
	dashboardHandler := handler.NewDashboardHandler()
	announcementHandler := handler.NewAnnouncementHandler(d.Marks)
	activityHandler := handler.NewActivityHandler(d.Activity)

	// --- Auth ---
	e.POST("/auth/signin", authHandler.SignIn)
	e.POST("/auth/logout", authHandler.SignOut)
	e.GET("/auth/me", authHandler.Me)

	// --- Role-switcher affordances (any signed-in user) ---
	user := e.Group("", guardFor(anyUserPolicy))
	user.GET("/dashboards", dashboardHandler.List)
	user.GET("/dashboards/landing", dashboardHandler.Landing)
	user.GET("/announcements/read", announcementHandler.ReadIDs)
	user.POST("/announcements/read", announcementHandler.MarkRead)

	// --- Role-scoped dashboards ---
	admin := e.Group("/admin", guardFor(adminPolicy))
	admin.GET("", dashboardHandler.Board(domain.RoleAdmin))

	adminActivity := e.Group("/admin/activity", guardFor(activityPolicy))
	adminActivity.GET("", activityHandler.Recent)

	moderator := e.Group("/moderator", guardFor(moderatorPolicy))
	moderator.GET("", dashboardHandler.Board(domain.RoleModerator))

	dashboard := e.Group("/dashboard", guardFor(studentPolicy))
	dashboard.GET("", dashboardHandler.Board(domain.RoleStudent))

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
