package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UpdateDoctorStatus approves or suspends a doctor account.
func (h *Handler) UpdateDoctorStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()
	if err := h.Schedules.SetStatus(ctx, c.Param("id"), req.Status); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor status updated", "status": req.Status})
}
