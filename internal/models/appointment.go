package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment is a booking at slot granularity. Date holds the calendar day
// (midnight in the clinic timezone), Time the display string, e.g. "09:00 AM".
// Only upcoming appointments reserve a slot.
type Appointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorID    primitive.ObjectID `bson:"doctor" json:"doctorId"`
	PatientID   primitive.ObjectID `bson:"patient" json:"patientId"`
	DoctorName  string             `bson:"doctorName" json:"doctorName"`
	PatientName string             `bson:"patientName" json:"patientName"`
	Date        time.Time          `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Reason      string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Slot is a bookable unit returned by the slot generator. It is never stored.
type Slot struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // hh:mm AM/PM
}
