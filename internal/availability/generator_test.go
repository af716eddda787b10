package availability

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/medibook-api/internal/models"
)

// 2026-10-19 is a Monday.
var monday = time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)

func mondayOnly(start, end string) models.WorkingHours {
	return models.WorkingHours{"monday": {Enabled: true, Start: start, End: end}}
}

func times(slots []models.Slot, date string) []string {
	var out []string
	for _, s := range slots {
		if s.Date == date {
			out = append(out, s.Time)
		}
	}
	return out
}

func TestGenerateDefaultWeek(t *testing.T) {
	slots, err := Generate(Schedule{WorkingHours: models.DefaultWorkingHours()}, Options{Now: monday})
	require.NoError(t, err)

	// five working days, 09:00-17:00 in hour slots
	require.Len(t, slots, 40)
	assert.Equal(t, models.Slot{Date: "2026-10-19", Time: "09:00 AM"}, slots[0])
	assert.Equal(t, models.Slot{Date: "2026-10-23", Time: "04:00 PM"}, slots[len(slots)-1])
	assert.Empty(t, times(slots, "2026-10-24"), "saturday")
	assert.Empty(t, times(slots, "2026-10-25"), "sunday")
}

func TestGenerateOrdering(t *testing.T) {
	slots, err := Generate(Schedule{WorkingHours: models.DefaultWorkingHours()}, Options{Now: monday, SlotDurationMinutes: 30})
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.Date == cur.Date {
			p, _ := ParseClock12(prev.Time)
			c, _ := ParseClock12(cur.Time)
			assert.Less(t, p, c)
		} else {
			assert.Less(t, prev.Date, cur.Date)
		}
	}
}

func TestGenerateExcludesActiveBooking(t *testing.T) {
	schedule := Schedule{
		WorkingHours: mondayOnly("09:00", "11:00"),
		Bookings:     []Booking{{Date: "2026-10-19", Start: 600}},
	}

	slots, err := Generate(schedule, Options{Now: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM"}, times(slots, "2026-10-19"))
}

func TestGenerateBookingOffSlotBoundaryDoesNotCollide(t *testing.T) {
	schedule := Schedule{
		WorkingHours: mondayOnly("09:00", "11:00"),
		Bookings:     []Booking{{Date: "2026-10-19", Start: 570}}, // 09:30
	}

	slots, err := Generate(schedule, Options{Now: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, times(slots, "2026-10-19"))
}

func TestGenerateBlockedIntervals(t *testing.T) {
	tests := []struct {
		name  string
		block Interval
		want  []string
	}{
		{"full containment", Interval{600, 720}, []string{"09:00 AM", "12:00 PM"}},
		{"partial overlap", Interval{630, 645}, []string{"09:00 AM", "11:00 AM", "12:00 PM"}},
		{"touching boundary", Interval{660, 720}, []string{"09:00 AM", "10:00 AM", "12:00 PM"}},
		{"whole window", Interval{480, 900}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := Schedule{
				WorkingHours: mondayOnly("09:00", "13:00"),
				Blocks:       []Block{{Date: "2026-10-19", Window: tt.block}},
			}
			slots, err := Generate(schedule, Options{Now: monday})
			require.NoError(t, err)
			assert.Equal(t, tt.want, times(slots, "2026-10-19"))
		})
	}
}

func TestGenerateBlockOnOtherDayIgnored(t *testing.T) {
	schedule := Schedule{
		WorkingHours: mondayOnly("09:00", "11:00"),
		Blocks:       []Block{{Date: "2026-10-20", Window: Interval{540, 660}}},
	}

	slots, err := Generate(schedule, Options{Now: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, times(slots, "2026-10-19"))
}

func TestGenerateDisabledDay(t *testing.T) {
	wh := models.DefaultWorkingHours()
	wh["saturday"] = models.DaySchedule{Enabled: false, Start: "09:00", End: "17:00"}
	schedule := Schedule{
		WorkingHours: wh,
		Blocks:       []Block{{Date: "2026-10-24", Window: Interval{540, 600}}},
		Bookings:     []Booking{{Date: "2026-10-31", Start: 540}},
	}

	slots, err := Generate(schedule, Options{Now: monday, HorizonDays: 14})
	require.NoError(t, err)
	for _, s := range slots {
		d, err := time.Parse(DateLayout, s.Date)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, d.Weekday(), s.Date)
	}
}

func TestGenerateDegenerateWindows(t *testing.T) {
	for _, wh := range []models.WorkingHours{
		mondayOnly("10:00", "10:00"),
		mondayOnly("12:00", "09:00"),
	} {
		slots, err := Generate(Schedule{WorkingHours: wh}, Options{Now: monday})
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}

func TestGenerateDropsPartialFinalSlot(t *testing.T) {
	slots, err := Generate(Schedule{WorkingHours: mondayOnly("09:00", "10:30")}, Options{Now: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM"}, times(slots, "2026-10-19"))

	slots, err = Generate(Schedule{WorkingHours: mondayOnly("09:00", "10:30")}, Options{Now: monday, SlotDurationMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM", "09:30 AM", "10:00 AM"}, times(slots, "2026-10-19"))
}

func TestGenerateKeepsElapsedSlotsToday(t *testing.T) {
	late := time.Date(2026, time.October, 19, 15, 30, 0, 0, time.UTC)

	slots, err := Generate(Schedule{WorkingHours: mondayOnly("09:00", "11:00")}, Options{Now: late, HorizonDays: 1})
	require.NoError(t, err)
	assert.Equal(t, []models.Slot{
		{Date: "2026-10-19", Time: "09:00 AM"},
		{Date: "2026-10-19", Time: "10:00 AM"},
	}, slots)
}

func TestGenerateUsesLocationOfNow(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// Sunday 22:00 UTC is already Monday 01:00 at UTC+3
	now := time.Date(2026, time.October, 18, 22, 0, 0, 0, time.UTC).In(loc)

	slots, err := Generate(Schedule{WorkingHours: mondayOnly("09:00", "10:00")}, Options{Now: now, HorizonDays: 1})
	require.NoError(t, err)
	assert.Equal(t, []models.Slot{{Date: "2026-10-19", Time: "09:00 AM"}}, slots)
}

func TestGenerateOptions(t *testing.T) {
	_, err := Generate(Schedule{}, Options{Now: monday, HorizonDays: -1})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = Generate(Schedule{}, Options{Now: monday, SlotDurationMinutes: -30})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	slots, err := Generate(Schedule{}, Options{Now: monday})
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateMalformedWorkingHours(t *testing.T) {
	_, err := Generate(Schedule{WorkingHours: mondayOnly("9am", "17:00")}, Options{Now: monday})
	assert.ErrorIs(t, err, ErrMalformedSchedule)

	// malformed hours on a disabled day are never read
	wh := models.WorkingHours{"monday": {Enabled: false, Start: "9am", End: "5pm"}}
	_, err = Generate(Schedule{WorkingHours: wh}, Options{Now: monday})
	assert.NoError(t, err)
}

func TestGenerateOutputFormat(t *testing.T) {
	timeRe := regexp.MustCompile(`^\d{1,2}:\d{2} (AM|PM)$`)
	dateRe := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	wh := models.DefaultWorkingHours()
	wh["saturday"] = models.DaySchedule{Enabled: true, Start: "00:00", End: "23:45"}
	slots, err := Generate(Schedule{WorkingHours: wh}, Options{Now: monday, SlotDurationMinutes: 15})
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Regexp(t, timeRe, s.Time)
		assert.Regexp(t, dateRe, s.Date)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	schedule := Schedule{
		WorkingHours: models.DefaultWorkingHours(),
		Blocks:       []Block{{Date: "2026-10-20", Window: Interval{600, 720}}},
		Bookings:     []Booking{{Date: "2026-10-21", Start: 540}},
	}

	first, err := Generate(schedule, Options{Now: monday})
	require.NoError(t, err)
	second, err := Generate(schedule, Options{Now: monday})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBlocksFrom(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	stored := []models.BlockedInterval{{
		ID: primitive.NewObjectID(),
		// midnight of 2026-10-20 at UTC-5, as persisted in UTC
		Date:      time.Date(2026, time.October, 20, 5, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "12:00",
		Reason:    "conference",
	}}

	blocks, err := BlocksFrom(stored, loc)
	require.NoError(t, err)
	assert.Equal(t, []Block{{Date: "2026-10-20", Window: Interval{600, 720}}}, blocks)

	stored[0].EndTime = "noon"
	_, err = BlocksFrom(stored, loc)
	assert.ErrorIs(t, err, ErrMalformedSchedule)
}

func TestBookingsFrom(t *testing.T) {
	day := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	apts := []models.Appointment{
		{ID: primitive.NewObjectID(), Date: day, Time: "10:00 AM", Status: models.StatusUpcoming},
		{ID: primitive.NewObjectID(), Date: day, Time: "9:00 AM", Status: models.StatusUpcoming},
		{ID: primitive.NewObjectID(), Date: day, Time: "11:00 AM", Status: models.StatusCancelled},
		{ID: primitive.NewObjectID(), Date: day, Time: "12:00 PM", Status: models.StatusCompleted},
	}

	bookings, err := BookingsFrom(apts, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []Booking{
		{Date: "2026-10-19", Start: 600},
		{Date: "2026-10-19", Start: 540},
	}, bookings)

	apts[0].Time = "10h00"
	_, err = BookingsFrom(apts, time.UTC)
	assert.ErrorIs(t, err, ErrMalformedSchedule)
}
