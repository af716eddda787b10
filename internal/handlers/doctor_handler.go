package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medibook-api/internal/models"
	"github.com/harentsoaR/medibook-api/internal/services"
)

func (h *Handler) ListDoctors(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	doctors, err := h.Schedules.ListDoctors(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	doctor, err := h.Schedules.GetDoctor(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// GetOwnSchedule returns the calling doctor's working hours and blocked times.
func (h *Handler) GetOwnSchedule(c *gin.Context) {
	userID, _ := caller(c)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	doctor, err := h.Schedules.OwnSchedule(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	blocked := doctor.BlockedTimes
	if blocked == nil {
		blocked = []models.BlockedInterval{}
	}
	c.JSON(http.StatusOK, gin.H{
		"doctorId":     doctor.ID,
		"workingHours": doctor.WorkingHours,
		"blockedTimes": blocked,
	})
}

func (h *Handler) UpdateWorkingHours(c *gin.Context) {
	var req struct {
		WorkingHours models.WorkingHours `json:"workingHours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	userID, _ := caller(c)
	ctx, cancel := h.requestContext(c)
	defer cancel()
	wh, err := h.Schedules.UpdateWorkingHours(ctx, userID, req.WorkingHours)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workingHours": wh})
}

type blockedTimeRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *Handler) AddBlockedTime(c *gin.Context) {
	var req blockedTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	userID, _ := caller(c)
	ctx, cancel := h.requestContext(c)
	defer cancel()
	block, err := h.Schedules.AddBlockedTime(ctx, userID, services.BlockRequest{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

func (h *Handler) DeleteBlockedTime(c *gin.Context) {
	userID, _ := caller(c)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.Schedules.DeleteBlockedTime(ctx, userID, c.Param("blockId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blocked time removed"})
}
