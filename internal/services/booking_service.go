package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/medibook-api/internal/apperrors"
	"github.com/harentsoaR/medibook-api/internal/availability"
	"github.com/harentsoaR/medibook-api/internal/models"
	"github.com/harentsoaR/medibook-api/internal/repository"
)

var (
	errAppointmentNotFound = apperrors.NewNotFoundError("Appointment not found")
	errSlotTaken           = apperrors.NewConflictError("Slot is no longer available")
)

// BookRequest is a patient's request for one slot.
type BookRequest struct {
	DoctorID string
	Date     string // YYYY-MM-DD
	Time     string // h:mm AM/PM
	Reason   string
}

// SlotChecker decides whether a slot is currently offered.
type SlotChecker interface {
	IsSlotAvailable(ctx context.Context, doctorID primitive.ObjectID, day time.Time, minute int) (bool, error)
}

// BookingService writes to the booking ledger. Slot exclusivity under
// concurrent requests comes from the unique index on active appointments.
type BookingService struct {
	appointments AppointmentStore
	doctors      DoctorStore
	users        UserStore
	slots        SlotChecker
	notifier     Notifier
	loc          *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

func NewBookingService(appointments AppointmentStore, doctors DoctorStore, users UserStore, slots SlotChecker, notifier Notifier, loc *time.Location, logger *zap.Logger) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{
		appointments: appointments,
		doctors:      doctors,
		users:        users,
		slots:        slots,
		notifier:     notifier,
		loc:          loc,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *BookingService) Book(ctx context.Context, patientID string, req BookRequest) (*models.Appointment, error) {
	pid, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid user")
	}
	doctorID, err := primitive.ObjectIDFromHex(req.DoctorID)
	if err != nil {
		return nil, errDoctorNotFound
	}
	day, err := time.ParseInLocation(availability.DateLayout, strings.TrimSpace(req.Date), s.loc)
	if err != nil {
		return nil, apperrors.NewValidationError("Date must be YYYY-MM-DD")
	}
	minute, err := availability.ParseClock12(req.Time)
	if err != nil {
		return nil, apperrors.NewValidationError("Time must look like 09:00 AM")
	}

	doctor, err := s.doctors.FindByID(ctx, doctorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errDoctorNotFound
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load doctor", err)
	}
	if doctor.Status != models.DoctorApproved {
		return nil, apperrors.NewConflictError("Doctor is not accepting appointments")
	}

	free, err := s.slots.IsSlotAvailable(ctx, doctorID, day, minute)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, errSlotTaken
	}

	patient, err := s.users.FindByID(ctx, pid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorizedError("Invalid user")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load patient", err)
	}

	apt := &models.Appointment{
		DoctorID:    doctorID,
		PatientID:   pid,
		DoctorName:  doctor.Name,
		PatientName: patient.FullName,
		Date:        day,
		Time:        availability.FormatClock12(minute),
		Reason:      strings.TrimSpace(req.Reason),
		Status:      models.StatusUpcoming,
		CreatedAt:   s.now(),
	}
	if err := s.appointments.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errSlotTaken
		}
		return nil, apperrors.NewInternalError("failed to create appointment", err)
	}

	s.logger.Info("appointment booked",
		zap.String("appointmentID", apt.ID.Hex()),
		zap.String("doctorID", doctorID.Hex()),
		zap.String("date", req.Date),
		zap.String("time", apt.Time),
	)
	s.notifier.AppointmentBooked(patient, apt)
	return apt, nil
}

// ListForUser returns a patient's or a doctor's appointments.
func (s *BookingService) ListForUser(ctx context.Context, userID, role string) ([]models.Appointment, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid user")
	}

	var appointments []models.Appointment
	switch role {
	case models.RolePatient:
		appointments, err = s.appointments.ListByPatient(ctx, uid)
	case models.RoleDoctor:
		doctor, derr := s.doctorForUser(ctx, uid)
		if derr != nil {
			return nil, derr
		}
		appointments, err = s.appointments.ListByDoctor(ctx, doctor.ID)
	default:
		return nil, apperrors.NewForbiddenError("Permission denied")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	return appointments, nil
}

// Cancel lets the patient who booked or the doctor who owns an upcoming
// appointment cancel it.
func (s *BookingService) Cancel(ctx context.Context, userID, role, appointmentID string) (*models.Appointment, error) {
	apt, err := s.authorize(ctx, userID, role, appointmentID, true)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, apt, models.StatusCancelled); err != nil {
		return nil, err
	}

	patient, err := s.users.FindByID(ctx, apt.PatientID)
	if err != nil {
		s.logger.Warn("cancellation notice skipped", zap.String("appointmentID", apt.ID.Hex()), zap.Error(err))
	} else {
		s.notifier.AppointmentCancelled(patient, apt)
	}
	return apt, nil
}

// Complete marks an upcoming appointment as completed. Only its doctor may.
func (s *BookingService) Complete(ctx context.Context, userID, role, appointmentID string) (*models.Appointment, error) {
	apt, err := s.authorize(ctx, userID, role, appointmentID, false)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, apt, models.StatusCompleted); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *BookingService) authorize(ctx context.Context, userID, role, appointmentID string, patientAllowed bool) (*models.Appointment, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid user")
	}
	aid, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, errAppointmentNotFound
	}
	apt, err := s.appointments.FindByID(ctx, aid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errAppointmentNotFound
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load appointment", err)
	}

	switch role {
	case models.RolePatient:
		if patientAllowed && apt.PatientID == uid {
			return apt, nil
		}
	case models.RoleDoctor:
		doctor, err := s.doctorForUser(ctx, uid)
		if err != nil {
			return nil, err
		}
		if apt.DoctorID == doctor.ID {
			return apt, nil
		}
	}
	return nil, apperrors.NewForbiddenError("Permission denied")
}

func (s *BookingService) transition(ctx context.Context, apt *models.Appointment, to string) error {
	if apt.Status != models.StatusUpcoming {
		return apperrors.NewConflictError("Only upcoming appointments can be changed")
	}
	err := s.appointments.TransitionStatus(ctx, apt.ID, models.StatusUpcoming, to)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewConflictError("Only upcoming appointments can be changed")
	}
	if err != nil {
		return apperrors.NewInternalError("failed to update appointment", err)
	}
	apt.Status = to
	return nil
}

func (s *BookingService) doctorForUser(ctx context.Context, uid primitive.ObjectID) (*models.Doctor, error) {
	doctor, err := s.doctors.FindByUserID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errProfileNotFound
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load doctor profile", err)
	}
	return doctor, nil
}
