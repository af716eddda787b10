package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/medibook-api/internal/apperrors"
	"github.com/harentsoaR/medibook-api/internal/middleware"
	"github.com/harentsoaR/medibook-api/internal/models"
	"github.com/harentsoaR/medibook-api/internal/services"
)

type AccountService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type ScheduleService interface {
	OwnSchedule(ctx context.Context, userID string) (*models.Doctor, error)
	UpdateWorkingHours(ctx context.Context, userID string, wh models.WorkingHours) (models.WorkingHours, error)
	AddBlockedTime(ctx context.Context, userID string, req services.BlockRequest) (*models.BlockedInterval, error)
	DeleteBlockedTime(ctx context.Context, userID, blockID string) error
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)
	SetStatus(ctx context.Context, doctorID, status string) error
}

type SlotService interface {
	GenerateSlots(ctx context.Context, doctorID string, req services.SlotRequest) ([]models.Slot, error)
}

type BookingService interface {
	Book(ctx context.Context, patientID string, req services.BookRequest) (*models.Appointment, error)
	ListForUser(ctx context.Context, userID, role string) ([]models.Appointment, error)
	Cancel(ctx context.Context, userID, role, appointmentID string) (*models.Appointment, error)
	Complete(ctx context.Context, userID, role, appointmentID string) (*models.Appointment, error)
}

// Handler holds the services every route needs.
type Handler struct {
	Accounts  AccountService
	Schedules ScheduleService
	Slots     SlotService
	Bookings  BookingService
	Logger    *zap.Logger
	Timeout   time.Duration
}

func NewHandler(accounts AccountService, schedules ScheduleService, slots SlotService, bookings BookingService, logger *zap.Logger, timeout time.Duration) *Handler {
	return &Handler{
		Accounts:  accounts,
		Schedules: schedules,
		Slots:     slots,
		Bookings:  bookings,
		Logger:    logger,
		Timeout:   timeout,
	}
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.Timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.Timeout)
}

func caller(c *gin.Context) (userID, role string) {
	return c.GetString(middleware.UserIDKey), c.GetString(middleware.UserRoleKey)
}

// respondError writes client errors as {"message": ...}. Anything else is
// logged and answered with a plain-text 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if status, ok := statusFor[appErr.Type]; ok {
			c.JSON(status, gin.H{"message": appErr.Message})
			return
		}
	}
	h.Logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("requestID", c.GetString(middleware.RequestIDKey)),
		zap.Error(err),
	)
	c.String(http.StatusInternalServerError, "Server Error")
}

var statusFor = map[apperrors.ErrorType]int{
	apperrors.ErrorTypeNotFound:     http.StatusNotFound,
	apperrors.ErrorTypeValidation:   http.StatusBadRequest,
	apperrors.ErrorTypeConflict:     http.StatusConflict,
	apperrors.ErrorTypeForbidden:    http.StatusForbidden,
	apperrors.ErrorTypeUnauthorized: http.StatusUnauthorized,
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
