package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medibook-api/internal/middleware"
	"github.com/harentsoaR/medibook-api/internal/models"
)

// RegisterRoutes mounts every endpoint on r. auth must authenticate the
// caller and set its id and role.
func (h *Handler) RegisterRoutes(r gin.IRouter, auth gin.HandlerFunc) {
	r.GET("/health", h.Health)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	api := r.Group("/api")
	api.Use(auth)
	{
		api.GET("/me", h.GetCurrentUser)

		api.GET("/doctors", h.ListDoctors)
		api.GET("/doctors/:id", h.GetDoctor)

		doctorOnly := middleware.RequireRole(models.RoleDoctor)
		api.GET("/doctors/me/schedule", doctorOnly, h.GetOwnSchedule)
		api.PUT("/doctors/me/working-hours", doctorOnly, h.UpdateWorkingHours)
		api.POST("/doctors/me/blocked-times", doctorOnly, h.AddBlockedTime)
		api.DELETE("/doctors/me/blocked-times/:blockId", doctorOnly, h.DeleteBlockedTime)

		api.GET("/appointments/available-slots/:doctorId", h.GetAvailableSlots)
		api.POST("/appointments", middleware.RequireRole(models.RolePatient), h.CreateAppointment)
		api.GET("/appointments", h.GetAppointments)
		api.PATCH("/appointments/:id/cancel", middleware.RequireRole(models.RolePatient, models.RoleDoctor), h.CancelAppointment)
		api.PATCH("/appointments/:id/complete", doctorOnly, h.CompleteAppointment)

		api.PATCH("/admin/doctors/:id/status", middleware.RequireRole(models.RoleAdmin), h.UpdateDoctorStatus)
	}
}
