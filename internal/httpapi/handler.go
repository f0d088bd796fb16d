// Package httpapi exposes the service over gin. Handlers translate between
// HTTP and the domain services; success and error messages for the UI are
// produced here and nowhere deeper.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classtrack/internal/attendance"
	"classtrack/internal/auth"
	"classtrack/internal/classroom"
	"classtrack/internal/config"
	"classtrack/internal/report"
	"classtrack/internal/store"
	"classtrack/internal/timetable"
)

// Handler carries the wired services for all routes.
type Handler struct {
	cfg        config.App
	log        *zap.Logger
	auth       *auth.Service
	classes    *classroom.Service
	attendance *attendance.Service
	reports    *report.Repository
	db         *store.DB
	redis      *store.Redis
	grid       timetable.Grid
}

// New creates a handler.
func New(cfg config.App, log *zap.Logger, authSvc *auth.Service, classes *classroom.Service, att *attendance.Service, reports *report.Repository, db *store.DB, redis *store.Redis) *Handler {
	return &Handler{
		cfg:        cfg,
		log:        log,
		auth:       authSvc,
		classes:    classes,
		attendance: att,
		reports:    reports,
		db:         db,
		redis:      redis,
		grid: timetable.Grid{
			DayStart: timetable.Minute(cfg.GridStartHour * 60),
			DayEnd:   timetable.Minute(cfg.GridEndHour * 60),
			Bucket:   cfg.GridBucketMinutes,
		},
	}
}

// Routes registers all endpoints.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/healthz", h.Healthz)

	v1 := r.Group("/v1")

	v1.POST("/auth/register", h.Register)
	v1.POST("/auth/login", h.Login)
	v1.POST("/auth/refresh", h.Refresh)
	v1.POST("/auth/logout", h.Logout)

	// Student-facing routes are unauthenticated: the join link and the
	// attendance code are the credentials.
	v1.GET("/join/:code", h.JoinDetails)
	v1.POST("/join/:code", h.Join)
	v1.POST("/attendance", h.SubmitAttendance)
	v1.GET("/student-attendance", h.StudentAttendance)

	fac := v1.Group("", auth.FacultyAuth(h.cfg.JWTSigningKey, h.cfg.JWTIssuer))
	fac.POST("/classes", h.CreateClass)
	fac.GET("/classes", h.ListClasses)
	fac.DELETE("/classes/:id", h.DeleteClass)
	fac.POST("/classes/:id/slots", h.AddSlot)
	fac.GET("/classes/:id/slots", h.ListSlots)
	fac.GET("/classes/:id/timetable", h.Timetable)
	fac.POST("/classes/:id/attendance-session", h.StartSession)
	fac.GET("/classes/:id/attendance-session", h.ActiveSession)
	fac.POST("/classes/:id/students", h.AddStudent)
	fac.GET("/classes/:id/students", h.Roster)
	fac.GET("/dashboard", h.Dashboard)
}

// Healthz reports db and redis connectivity.
func (h *Handler) Healthz(c *gin.Context) {
	redisHealthy := h.redis.Healthy(c.Request.Context())
	dbHealthy := h.db != nil && h.db.Client.PingContext(c.Request.Context()) == nil
	status := http.StatusOK
	if !redisHealthy || !dbHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
}
