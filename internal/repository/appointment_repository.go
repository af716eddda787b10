package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/medibook-api/internal/models"
)

type AppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

// Create inserts apt. A second upcoming appointment for the same doctor,
// date and time violates the unique_active_slot index and returns
// ErrDuplicate.
func (r *AppointmentRepository) Create(ctx context.Context, apt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if apt.ID.IsZero() {
		apt.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, apt)
	return translate(err)
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var apt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&apt); err != nil {
		return nil, translate(err)
	}
	return &apt, nil
}

func activeBookingsFilter(doctorID primitive.ObjectID, from, to time.Time) bson.M {
	return bson.M{
		"doctor": doctorID,
		"status": models.StatusUpcoming,
		"date":   bson.M{"$gte": from, "$lt": to},
	}
}

// FindActiveBookings returns the upcoming appointments of a doctor whose
// date falls in [from, to).
func (r *AppointmentRepository) FindActiveBookings(ctx context.Context, doctorID primitive.ObjectID, from, to time.Time) ([]models.Appointment, error) {
	opts := options.Find().
		SetProjection(bson.M{"date": 1, "time": 1, "status": 1}).
		SetSort(bson.D{{Key: "date", Value: 1}})
	return r.find(ctx, activeBookingsFilter(doctorID, from, to), opts)
}

// ListByPatient returns a patient's appointments, newest first.
func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"patient": patientID}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

// ListByDoctor returns a doctor's appointments, newest first.
func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctor": doctorID}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

func (r *AppointmentRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = make([]models.Appointment, 0)
	}
	return appointments, nil
}

// TransitionStatus moves an appointment from one status to another. It
// returns ErrNotFound when no appointment with that id is in status from.
func (r *AppointmentRepository) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.StatusUpcoming}).
				SetName("unique_active_slot"),
		},
		{
			Keys:    bson.D{{Key: "patient", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("patient_date_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
