package repository

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/harentsoaR/medibook-api/internal/models"
)

var ErrMalformedDocument = errors.New("malformed document")

type workingHoursEntry struct {
	K string             `bson:"k"`
	V models.DaySchedule `bson:"v"`
}

// NormalizeWorkingHours decodes working hours from either of the shapes
// found in the doctors collection: an embedded document keyed by weekday, or
// an array of {k, v} entries written by older clients. A missing or null
// field yields empty working hours.
func NormalizeWorkingHours(raw bson.RawValue) (models.WorkingHours, error) {
	wh := make(models.WorkingHours)

	switch raw.Type {
	case 0, bson.TypeNull, bson.TypeUndefined:
		return wh, nil

	case bson.TypeEmbeddedDocument:
		var byDay map[string]models.DaySchedule
		if err := raw.Unmarshal(&byDay); err != nil {
			return nil, fmt.Errorf("%w: workingHours: %v", ErrMalformedDocument, err)
		}
		for k, v := range byDay {
			wh[strings.ToLower(k)] = v
		}
		return wh, nil

	case bson.TypeArray:
		var entries []workingHoursEntry
		if err := raw.Unmarshal(&entries); err != nil {
			return nil, fmt.Errorf("%w: workingHours: %v", ErrMalformedDocument, err)
		}
		for _, e := range entries {
			wh[strings.ToLower(e.K)] = e.V
		}
		return wh, nil

	default:
		return nil, fmt.Errorf("%w: workingHours has BSON type %s", ErrMalformedDocument, raw.Type)
	}
}
