package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classtrack/internal/attendance"
	"classtrack/internal/auth"
	"classtrack/internal/classroom"
	"classtrack/internal/timetable"
)

// writeError maps domain errors onto HTTP statuses. Sentinel errors carry
// user-facing messages; anything unrecognized is logged and hidden behind a
// generic 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, classroom.ErrNameRequired),
		errors.Is(err, classroom.ErrFieldsRequired),
		errors.Is(err, classroom.ErrEmailDomain),
		errors.Is(err, auth.ErrRegistration),
		errors.Is(err, timetable.ErrTimeRange),
		errors.Is(err, timetable.ErrDayRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, timetable.ErrSlotConflict),
		errors.Is(err, classroom.ErrAlreadyEnrolled),
		errors.Is(err, attendance.ErrAlreadySubmitted),
		errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, classroom.ErrClassNotFound),
		errors.Is(err, classroom.ErrInviteCode),
		errors.Is(err, attendance.ErrInvalidOrExpiredCode),
		errors.Is(err, attendance.ErrUnknownStudent):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, attendance.ErrNotEnrolled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrCredentials),
		errors.Is(err, auth.ErrRefreshToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
