package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classtrack/internal/auth"
	"classtrack/internal/classroom"
	"classtrack/internal/timetable"
)

// CreateClass creates a class with its initial weekly slot and returns the
// shareable join link.
func (h *Handler) CreateClass(c *gin.Context) {
	var req classroom.NewClass
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid class payload")
		return
	}
	cls, err := h.classes.CreateClass(c.Request.Context(), auth.FacultyID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"class":    cls,
		"join_url": h.cfg.BaseURL + "/join/" + cls.RegistrationCode,
	})
}

// ListClasses lists the caller's classes.
func (h *Handler) ListClasses(c *gin.Context) {
	classes, err := h.classes.Classes(c.Request.Context(), auth.FacultyID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if classes == nil {
		classes = []classroom.Class{}
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

// DeleteClass removes a class the caller owns.
func (h *Handler) DeleteClass(c *gin.Context) {
	if err := h.classes.DeleteClass(c.Request.Context(), c.Param("id"), auth.FacultyID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "class deleted"})
}

// AddSlot adds a weekly slot to a class after conflict checks.
func (h *Handler) AddSlot(c *gin.Context) {
	var req timetable.TimeSlot
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid slot payload")
		return
	}
	slot, err := h.classes.AddTimeSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

// ListSlots lists a class's weekly slots ordered by day then start time.
func (h *Handler) ListSlots(c *gin.Context) {
	slots, err := h.classes.Slots(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if slots == nil {
		slots = []timetable.TimeSlot{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// Timetable renders the class's slots onto the weekly grid. Every
// day-by-bucket cell is present; free periods have no slot.
func (h *Handler) Timetable(c *gin.Context) {
	slots, err := h.classes.Slots(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	cells := make([]timetable.Cell, 0, len(h.grid.Buckets())*7)
	for cell := range h.grid.Cells(slots) {
		cells = append(cells, cell)
	}
	c.JSON(http.StatusOK, gin.H{
		"buckets": h.grid.Buckets(),
		"cells":   cells,
	})
}
