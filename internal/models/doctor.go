package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DoctorPending   = "pending"
	DoctorApproved  = "approved"
	DoctorSuspended = "suspended"
)

// weekdayKeys is indexed by time.Weekday.
var weekdayKeys = [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// WeekdayKey returns the working-hours key for d, e.g. "monday".
func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[d]
}

// IsWeekdayKey reports whether key names a day of the week.
func IsWeekdayKey(key string) bool {
	for _, k := range weekdayKeys {
		if k == key {
			return true
		}
	}
	return false
}

// DaySchedule is one weekday's working window, times as "HH:MM".
type DaySchedule struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Start   string `bson:"start" json:"start"`
	End     string `bson:"end" json:"end"`
}

// WorkingHours maps weekday keys to their schedule. A missing key means the
// doctor does not work that day.
type WorkingHours map[string]DaySchedule

// Day returns the schedule for key if the doctor works that day.
func (wh WorkingHours) Day(key string) (DaySchedule, bool) {
	day, ok := wh[key]
	if !ok || !day.Enabled {
		return DaySchedule{}, false
	}
	return day, true
}

// DefaultWorkingHours is the schedule given to newly created doctors.
func DefaultWorkingHours() WorkingHours {
	wh := make(WorkingHours, len(weekdayKeys))
	for i, key := range weekdayKeys {
		weekday := time.Weekday(i)
		wh[key] = DaySchedule{
			Enabled: weekday != time.Saturday && weekday != time.Sunday,
			Start:   "09:00",
			End:     "17:00",
		}
	}
	return wh
}

// BlockedInterval is an ad-hoc window on one calendar day during which the
// doctor takes no appointments.
type BlockedInterval struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Date      time.Time          `bson:"date" json:"date"`
	StartTime string             `bson:"startTime" json:"startTime"`
	EndTime   string             `bson:"endTime" json:"endTime"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
}

type Doctor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Name           string             `bson:"name" json:"name"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Status         string             `bson:"status" json:"status"`
	WorkingHours   WorkingHours       `bson:"workingHours" json:"workingHours"`
	BlockedTimes   []BlockedInterval  `bson:"blockedTimes" json:"blockedTimes"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
