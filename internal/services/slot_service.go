package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/medibook-api/internal/apperrors"
	"github.com/harentsoaR/medibook-api/internal/availability"
	"github.com/harentsoaR/medibook-api/internal/models"
	"github.com/harentsoaR/medibook-api/internal/repository"
)

const MaxHorizonDays = 60

var errDoctorNotFound = apperrors.NewNotFoundError("Doctor not found")

// SlotRequest overrides the configured defaults when a field is non-zero.
type SlotRequest struct {
	HorizonDays         int
	SlotDurationMinutes int
}

// SlotService computes available slots from fresh reads of the schedule
// store and booking ledger on every call.
type SlotService struct {
	schedules ScheduleStore
	ledger    BookingLedger
	loc       *time.Location
	horizon   int
	duration  int
	now       func() time.Time
	logger    *zap.Logger
}

func NewSlotService(schedules ScheduleStore, ledger BookingLedger, loc *time.Location, horizonDays, slotMinutes int, logger *zap.Logger) *SlotService {
	if loc == nil {
		loc = time.UTC
	}
	return &SlotService{
		schedules: schedules,
		ledger:    ledger,
		loc:       loc,
		horizon:   horizonDays,
		duration:  slotMinutes,
		now:       time.Now,
		logger:    logger,
	}
}

// Location is the timezone calendar days are computed in.
func (s *SlotService) Location() *time.Location {
	return s.loc
}

// Today returns midnight of the current day in the clinic timezone.
func (s *SlotService) Today() time.Time {
	return midnight(s.now().In(s.loc))
}

// GenerateSlots returns the bookable slots of a doctor. An unknown or
// malformed doctor id is a NotFound error; any read failure is Internal.
func (s *SlotService) GenerateSlots(ctx context.Context, doctorID string, req SlotRequest) ([]models.Slot, error) {
	id, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, errDoctorNotFound
	}
	return s.generate(ctx, id, req)
}

func (s *SlotService) generate(ctx context.Context, doctorID primitive.ObjectID, req SlotRequest) ([]models.Slot, error) {
	opts := availability.Options{
		HorizonDays:         firstPositive(req.HorizonDays, s.horizon),
		SlotDurationMinutes: firstPositive(req.SlotDurationMinutes, s.duration),
		Now:                 s.now().In(s.loc),
	}
	if opts.HorizonDays > MaxHorizonDays {
		return nil, apperrors.NewValidationError("Horizon is too long")
	}

	doctor, err := s.schedules.FindByID(ctx, doctorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errDoctorNotFound
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load doctor schedule", err)
	}

	from := midnight(opts.Now)
	to := from.AddDate(0, 0, opts.HorizonDays)
	appointments, err := s.ledger.FindActiveBookings(ctx, doctorID, from, to)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load bookings", err)
	}

	blocks, err := availability.BlocksFrom(doctor.BlockedTimes, s.loc)
	if err != nil {
		return nil, apperrors.NewInternalError("stored blocked times are malformed", err)
	}
	bookings, err := availability.BookingsFrom(appointments, s.loc)
	if err != nil {
		return nil, apperrors.NewInternalError("stored bookings are malformed", err)
	}

	slots, err := availability.Generate(availability.Schedule{
		WorkingHours: doctor.WorkingHours,
		Blocks:       blocks,
		Bookings:     bookings,
	}, opts)
	if errors.Is(err, availability.ErrInvalidOptions) {
		return nil, apperrors.NewValidationError("Invalid slot options")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("stored working hours are malformed", err)
	}

	s.logger.Debug("generated slots",
		zap.String("doctorID", doctorID.Hex()),
		zap.Int("horizonDays", opts.HorizonDays),
		zap.Int("slotMinutes", opts.SlotDurationMinutes),
		zap.Int("count", len(slots)),
	)
	return slots, nil
}

// IsSlotAvailable reports whether the slot starting at minute on day is
// currently offered with the default slot duration. Days before today and
// beyond the maximum horizon are never available.
func (s *SlotService) IsSlotAvailable(ctx context.Context, doctorID primitive.ObjectID, day time.Time, minute int) (bool, error) {
	today := s.Today()
	day = midnight(day.In(s.loc))
	if day.Before(today) {
		return false, nil
	}
	horizon := daysBetween(today, day) + 1
	if horizon > MaxHorizonDays {
		return false, nil
	}

	slots, err := s.generate(ctx, doctorID, SlotRequest{HorizonDays: horizon})
	if err != nil {
		return false, err
	}
	want := models.Slot{Date: day.Format(availability.DateLayout), Time: availability.FormatClock12(minute)}
	for _, slot := range slots {
		if slot == want {
			return true, nil
		}
	}
	return false, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, both at midnight, stopping
// once the count passes MaxHorizonDays. It is safe across DST changes.
func daysBetween(a, b time.Time) int {
	days := 0
	for d := a; d.Before(b) && days <= MaxHorizonDays; d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
