package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/medibook-api/internal/apperrors"
	"github.com/harentsoaR/medibook-api/internal/availability"
	"github.com/harentsoaR/medibook-api/internal/models"
	"github.com/harentsoaR/medibook-api/internal/repository"
)

var errProfileNotFound = apperrors.NewNotFoundError("Doctor profile not found")

// BlockRequest is the input for adding a blocked interval.
type BlockRequest struct {
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Reason    string
}

// ScheduleService manages doctor profiles, working hours and blocked times.
type ScheduleService struct {
	doctors DoctorStore
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

func NewScheduleService(doctors DoctorStore, loc *time.Location, logger *zap.Logger) *ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleService{doctors: doctors, loc: loc, now: time.Now, logger: logger}
}

// CreateProfile creates the doctor record of a newly registered doctor user,
// with default working hours and pending approval.
func (s *ScheduleService) CreateProfile(ctx context.Context, user *models.User, specialization string) (*models.Doctor, error) {
	doctor := &models.Doctor{
		UserID:         user.ID,
		Name:           user.FullName,
		Specialization: specialization,
		Status:         models.DoctorPending,
		WorkingHours:   models.DefaultWorkingHours(),
		BlockedTimes:   []models.BlockedInterval{},
		CreatedAt:      s.now(),
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Doctor profile already exists")
		}
		return nil, apperrors.NewInternalError("failed to create doctor profile", err)
	}
	return doctor, nil
}

func (s *ScheduleService) profile(ctx context.Context, userID string) (*models.Doctor, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errProfileNotFound
	}
	doctor, err := s.doctors.FindByUserID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errProfileNotFound
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load doctor profile", err)
	}
	return doctor, nil
}

// OwnSchedule returns the doctor record of the given user.
func (s *ScheduleService) OwnSchedule(ctx context.Context, userID string) (*models.Doctor, error) {
	return s.profile(ctx, userID)
}

func (s *ScheduleService) UpdateWorkingHours(ctx context.Context, userID string, wh models.WorkingHours) (models.WorkingHours, error) {
	normalized, err := ValidateWorkingHours(wh)
	if err != nil {
		return nil, err
	}
	doctor, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.doctors.UpdateWorkingHours(ctx, doctor.ID, normalized); err != nil {
		return nil, apperrors.NewInternalError("failed to update working hours", err)
	}
	s.logger.Info("working hours updated", zap.String("doctorID", doctor.ID.Hex()))
	return normalized, nil
}

// ValidateWorkingHours checks keys and times and fills unspecified days as
// disabled.
func ValidateWorkingHours(wh models.WorkingHours) (models.WorkingHours, error) {
	out := make(models.WorkingHours, 7)
	for key, day := range wh {
		key = strings.ToLower(key)
		if !models.IsWeekdayKey(key) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown day %q", key))
		}
		if day.Enabled {
			start, err := availability.ParseClock(day.Start)
			if err != nil {
				return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid start time for %s", key))
			}
			end, err := availability.ParseClock(day.End)
			if err != nil {
				return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid end time for %s", key))
			}
			if start >= end {
				return nil, apperrors.NewValidationError(fmt.Sprintf("Start time must be before end time for %s", key))
			}
			day.Start, day.End = availability.FormatClock(start), availability.FormatClock(end)
		}
		out[key] = day
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		key := models.WeekdayKey(d)
		if _, ok := out[key]; !ok {
			out[key] = models.DaySchedule{Enabled: false, Start: "09:00", End: "17:00"}
		}
	}
	return out, nil
}

func (s *ScheduleService) AddBlockedTime(ctx context.Context, userID string, req BlockRequest) (*models.BlockedInterval, error) {
	date, err := time.ParseInLocation(availability.DateLayout, strings.TrimSpace(req.Date), s.loc)
	if err != nil {
		return nil, apperrors.NewValidationError("Date must be YYYY-MM-DD")
	}
	start, err := availability.ParseClock(req.StartTime)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid start time")
	}
	end, err := availability.ParseClock(req.EndTime)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid end time")
	}
	if start >= end {
		return nil, apperrors.NewValidationError("Start time must be before end time")
	}

	doctor, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	block := models.BlockedInterval{
		ID:        primitive.NewObjectID(),
		Date:      date,
		StartTime: availability.FormatClock(start),
		EndTime:   availability.FormatClock(end),
		Reason:    strings.TrimSpace(req.Reason),
	}
	if err := s.doctors.AddBlockedTime(ctx, doctor.ID, block); err != nil {
		return nil, apperrors.NewInternalError("failed to add blocked time", err)
	}
	return &block, nil
}

func (s *ScheduleService) DeleteBlockedTime(ctx context.Context, userID, blockID string) error {
	id, err := primitive.ObjectIDFromHex(blockID)
	if err != nil {
		return apperrors.NewNotFoundError("Blocked time not found")
	}
	doctor, err := s.profile(ctx, userID)
	if err != nil {
		return err
	}
	err = s.doctors.RemoveBlockedTime(ctx, doctor.ID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFoundError("Blocked time not found")
	}
	if err != nil {
		return apperrors.NewInternalError("failed to delete blocked time", err)
	}
	return nil
}

// ListDoctors returns approved doctors.
func (s *ScheduleService) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.doctors.List(ctx, models.DoctorApproved)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctors", err)
	}
	return doctors, nil
}

func (s *ScheduleService) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	id, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, errDoctorNotFound
	}
	doctor, err := s.doctors.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errDoctorNotFound
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load doctor", err)
	}
	return doctor, nil
}

// SetStatus approves or suspends a doctor.
func (s *ScheduleService) SetStatus(ctx context.Context, doctorID, status string) error {
	if status != models.DoctorApproved && status != models.DoctorSuspended {
		return apperrors.NewValidationError("Status must be approved or suspended")
	}
	id, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return errDoctorNotFound
	}
	err = s.doctors.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return errDoctorNotFound
	}
	if err != nil {
		return apperrors.NewInternalError("failed to update doctor status", err)
	}
	s.logger.Info("doctor status changed", zap.String("doctorID", doctorID), zap.String("status", status))
	return nil
}
