package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"classtrack/internal/classroom"
)

// JoinDetails shows the class behind a registration code so a student can see
// what they are joining.
func (h *Handler) JoinDetails(c *gin.Context) {
	details, err := h.classes.DetailsByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"class": details})
}

// Join self-enrolls a student through a join link.
func (h *Handler) Join(c *gin.Context) {
	var req classroom.Enrollment
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid enrollment payload")
		return
	}
	student, err := h.classes.JoinByCode(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Welcome %s, you are enrolled", student.Name),
		"student": student,
	})
}

// AddStudent enrolls a student on the faculty's behalf. Unlike the join link
// it accepts any email domain.
func (h *Handler) AddStudent(c *gin.Context) {
	var req classroom.Enrollment
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid student payload")
		return
	}
	student, err := h.classes.EnrollStudent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"student": student})
}
