package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StartSession returns the class's active attendance code, minting one only
// when none is live.
func (h *Handler) StartSession(c *gin.Context) {
	sess, err := h.attendance.StartSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session":           sess,
		"remaining_minutes": sess.RemainingMinutes(time.Now().UTC()),
	})
}

// ActiveSession reports the class's current session, if any. No active code is
// a normal state, not an error.
func (h *Handler) ActiveSession(c *gin.Context) {
	sess, err := h.attendance.ActiveSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if sess == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"active":            true,
		"session":           sess,
		"remaining_minutes": sess.RemainingMinutes(time.Now().UTC()),
	})
}

// SubmitAttendance records a student submission against an attendance code.
func (h *Handler) SubmitAttendance(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
		Roll string `json:"student_roll" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "code and student_roll are required")
		return
	}
	receipt, err := h.attendance.Submit(c.Request.Context(), req.Code, req.Roll)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Attendance recorded for %s", receipt.ClassName),
		"receipt": receipt,
	})
}
