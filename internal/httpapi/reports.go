package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"classtrack/internal/auth"
	"classtrack/internal/report"
)

// Roster returns the class roster with per-student attendance percentages.
func (h *Handler) Roster(c *gin.Context) {
	rows, err := h.reports.ClassAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if rows == nil {
		rows = []report.StudentAttendance{}
	}
	c.JSON(http.StatusOK, gin.H{"students": rows})
}

// StudentAttendance lets a student look up their own attendance percentage by
// roll number and email.
func (h *Handler) StudentAttendance(c *gin.Context) {
	roll := c.Query("roll")
	email := c.Query("email")
	if roll == "" || email == "" {
		badRequest(c, "roll and email query parameters are required")
		return
	}
	pct, err := h.reports.StudentPercentage(c.Request.Context(), roll, email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if pct == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no attendance data found for this student"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"student_roll":          roll,
		"attendance_percentage": *pct,
	})
}

// Dashboard returns the faculty landing-page summary for today.
func (h *Handler) Dashboard(c *gin.Context) {
	day := int(time.Now().Weekday())
	stats, err := h.reports.DashboardStats(c.Request.Context(), auth.FacultyID(c), day)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
