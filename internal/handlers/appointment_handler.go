package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medibook-api/internal/models"
	"github.com/harentsoaR/medibook-api/internal/services"
)

type slotQuery struct {
	Days     int `form:"days" binding:"omitempty,min=1,max=60"`
	Duration int `form:"duration" binding:"omitempty,min=5,max=480"`
}

// GetAvailableSlots answers GET /api/appointments/available-slots/:doctorId.
// A duration override only previews the grid: bookings are checked against
// the configured default duration, so off-grid times from an overridden
// list are refused with 409. The list does not depend on the doctor's
// approval status.
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	var q slotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "days must be 1-60 and duration 5-480 minutes")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()
	slots, err := h.Slots.GenerateSlots(ctx, c.Param("doctorId"), services.SlotRequest{
		HorizonDays:         q.Days,
		SlotDurationMinutes: q.Duration,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

type createAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Reason   string `json:"reason"`
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	userID, _ := caller(c)
	ctx, cancel := h.requestContext(c)
	defer cancel()
	apt, err := h.Bookings.Book(ctx, userID, services.BookRequest{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Time:     req.Time,
		Reason:   req.Reason,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apt)
}

// GetAppointments lists the caller's own appointments, as patient or doctor.
func (h *Handler) GetAppointments(c *gin.Context) {
	userID, role := caller(c)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	appointments, err := h.Bookings.ListForUser(ctx, userID, role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	userID, role := caller(c)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	apt, err := h.Bookings.Cancel(ctx, userID, role, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	userID, role := caller(c)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	apt, err := h.Bookings.Complete(ctx, userID, role, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}
