package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/medibook-api/internal/models"
)

// ScheduleStore reads a doctor's working hours and blocked times.
type ScheduleStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
}

// BookingLedger reads upcoming appointments.
type BookingLedger interface {
	FindActiveBookings(ctx context.Context, doctorID primitive.ObjectID, from, to time.Time) ([]models.Appointment, error)
}

type DoctorStore interface {
	ScheduleStore
	Create(ctx context.Context, doctor *models.Doctor) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error)
	List(ctx context.Context, status string) ([]models.Doctor, error)
	UpdateWorkingHours(ctx context.Context, id primitive.ObjectID, wh models.WorkingHours) error
	AddBlockedTime(ctx context.Context, id primitive.ObjectID, block models.BlockedInterval) error
	RemoveBlockedTime(ctx context.Context, id, blockID primitive.ObjectID) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

type AppointmentStore interface {
	BookingLedger
	Create(ctx context.Context, apt *models.Appointment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID primitive.ObjectID) ([]models.Appointment, error)
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Notifier delivers appointment messages. Implementations must not block.
type Notifier interface {
	AppointmentBooked(patient *models.User, apt *models.Appointment)
	AppointmentCancelled(patient *models.User, apt *models.Appointment)
}
