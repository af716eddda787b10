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

// doctorDocument is the stored form of a doctor. Working hours stay raw
// until normalized.
type doctorDocument struct {
	ID             primitive.ObjectID       `bson:"_id"`
	UserID         primitive.ObjectID       `bson:"userId"`
	Name           string                   `bson:"name"`
	Specialization string                   `bson:"specialization"`
	Status         string                   `bson:"status"`
	WorkingHours   bson.RawValue            `bson:"workingHours"`
	BlockedTimes   []models.BlockedInterval `bson:"blockedTimes"`
	CreatedAt      time.Time                `bson:"createdAt"`
}

func (d *doctorDocument) toModel() (*models.Doctor, error) {
	wh, err := NormalizeWorkingHours(d.WorkingHours)
	if err != nil {
		return nil, fmt.Errorf("doctor %s: %w", d.ID.Hex(), err)
	}
	blocked := d.BlockedTimes
	if blocked == nil {
		blocked = []models.BlockedInterval{}
	}
	return &models.Doctor{
		ID:             d.ID,
		UserID:         d.UserID,
		Name:           d.Name,
		Specialization: d.Specialization,
		Status:         d.Status,
		WorkingHours:   wh,
		BlockedTimes:   blocked,
		CreatedAt:      d.CreatedAt,
	}, nil
}

type DoctorRepository struct {
	coll *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) *DoctorRepository {
	return &DoctorRepository{coll: db.Collection(doctorsCollection)}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if doctor.ID.IsZero() {
		doctor.ID = primitive.NewObjectID()
	}
	if doctor.BlockedTimes == nil {
		doctor.BlockedTimes = []models.BlockedInterval{}
	}
	_, err := r.coll.InsertOne(ctx, doctor)
	return translate(err)
}

func (r *DoctorRepository) findOne(ctx context.Context, filter bson.M) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc doctorDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toModel()
}

// FindByID returns the doctor with normalized working hours and blocked times.
func (r *DoctorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *DoctorRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

// List returns doctors sorted by name, optionally filtered by status.
func (r *DoctorRepository) List(ctx context.Context, status string) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	for cursor.Next(ctx) {
		var doc doctorDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		doctor, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, *doctor)
	}
	return doctors, cursor.Err()
}

// UpdateWorkingHours replaces the whole working-hours document, which also
// migrates legacy array-shaped values to the keyed form.
func (r *DoctorRepository) UpdateWorkingHours(ctx context.Context, id primitive.ObjectID, wh models.WorkingHours) error {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"workingHours": wh}})
}

func (r *DoctorRepository) AddBlockedTime(ctx context.Context, id primitive.ObjectID, block models.BlockedInterval) error {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"blockedTimes": block}})
}

// RemoveBlockedTime pulls one block. ErrNotFound covers both an unknown
// doctor and an unknown block id.
func (r *DoctorRepository) RemoveBlockedTime(ctx context.Context, id, blockID primitive.ObjectID) error {
	return r.updateOne(ctx,
		bson.M{"_id": id, "blockedTimes._id": blockID},
		bson.M{"$pull": bson.M{"blockedTimes": bson.M{"_id": blockID}}},
	)
}

func (r *DoctorRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
}

func (r *DoctorRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DoctorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("status_name_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create doctor indexes: %w", err)
	}
	return nil
}
