// Package availability computes bookable appointment slots from a doctor's
// weekly working hours, blocked intervals and active bookings.
package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/harentsoaR/medibook-api/internal/models"
)

const (
	DateLayout = "2006-01-02"

	DefaultHorizonDays         = 7
	DefaultSlotDurationMinutes = 60
)

var (
	ErrInvalidOptions    = errors.New("invalid slot options")
	ErrMalformedSchedule = errors.New("malformed schedule")
)

// Options controls a single generation run. Zero values take the defaults;
// Now also fixes the timezone used for calendar days.
type Options struct {
	HorizonDays         int
	SlotDurationMinutes int
	Now                 time.Time
}

func (o Options) withDefaults() (Options, error) {
	if o.HorizonDays == 0 {
		o.HorizonDays = DefaultHorizonDays
	}
	if o.SlotDurationMinutes == 0 {
		o.SlotDurationMinutes = DefaultSlotDurationMinutes
	}
	if o.HorizonDays < 0 {
		return o, fmt.Errorf("%w: horizon of %d days", ErrInvalidOptions, o.HorizonDays)
	}
	if o.SlotDurationMinutes < 0 {
		return o, fmt.Errorf("%w: slot duration of %d minutes", ErrInvalidOptions, o.SlotDurationMinutes)
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o, nil
}

// Block is a blocked window on one calendar day.
type Block struct {
	Date   string // YYYY-MM-DD
	Window Interval
}

// Booking is an active appointment reduced to its calendar day and start minute.
type Booking struct {
	Date  string // YYYY-MM-DD
	Start int
}

// Schedule is the normalized input of Generate.
type Schedule struct {
	WorkingHours models.WorkingHours
	Blocks       []Block
	Bookings     []Booking
}

// Generate walks each calendar day from opts.Now's day through
// HorizonDays-1 days later and returns the free slots in day, then time order.
// Slots of the current day that already started are still returned.
func Generate(s Schedule, opts Options) ([]models.Slot, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	blocksByDay := make(map[string][]Interval, len(s.Blocks))
	for _, b := range s.Blocks {
		blocksByDay[b.Date] = append(blocksByDay[b.Date], b.Window)
	}
	booked := make(map[Booking]struct{}, len(s.Bookings))
	for _, b := range s.Bookings {
		booked[b] = struct{}{}
	}

	now := opts.Now
	first := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	slots := make([]models.Slot, 0)
	for i := 0; i < opts.HorizonDays; i++ {
		day := first.AddDate(0, 0, i)
		key := models.WeekdayKey(day.Weekday())
		hours, ok := s.WorkingHours.Day(key)
		if !ok {
			continue
		}
		window, err := workingWindow(hours)
		if err != nil {
			return nil, fmt.Errorf("working hours for %s: %w", key, err)
		}

		date := day.Format(DateLayout)
		for _, candidate := range window.Split(opts.SlotDurationMinutes) {
			if overlapsAny(candidate, blocksByDay[date]) {
				continue
			}
			if _, taken := booked[Booking{Date: date, Start: candidate.Start}]; taken {
				continue
			}
			slots = append(slots, models.Slot{Date: date, Time: FormatClock12(candidate.Start)})
		}
	}
	return slots, nil
}

// workingWindow parses a day's hours. A window whose end is not after its
// start is empty and yields no slots.
func workingWindow(day models.DaySchedule) (Interval, error) {
	start, err := ParseClock(day.Start)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: start: %v", ErrMalformedSchedule, err)
	}
	end, err := ParseClock(day.End)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: end: %v", ErrMalformedSchedule, err)
	}
	return Interval{Start: start, End: end}, nil
}

// BlocksFrom converts stored blocked intervals, taking each block's calendar
// day in loc.
func BlocksFrom(intervals []models.BlockedInterval, loc *time.Location) ([]Block, error) {
	blocks := make([]Block, 0, len(intervals))
	for _, bi := range intervals {
		start, err := ParseClock(bi.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: blocked time %s: %v", ErrMalformedSchedule, bi.ID.Hex(), err)
		}
		end, err := ParseClock(bi.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: blocked time %s: %v", ErrMalformedSchedule, bi.ID.Hex(), err)
		}
		blocks = append(blocks, Block{
			Date:   bi.Date.In(loc).Format(DateLayout),
			Window: Interval{Start: start, End: end},
		})
	}
	return blocks, nil
}

// BookingsFrom reduces appointments to (date, start minute) pairs. Anything
// other than an upcoming appointment is ignored.
func BookingsFrom(appointments []models.Appointment, loc *time.Location) ([]Booking, error) {
	bookings := make([]Booking, 0, len(appointments))
	for _, apt := range appointments {
		if apt.Status != models.StatusUpcoming {
			continue
		}
		start, err := ParseClock12(apt.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: appointment %s: %v", ErrMalformedSchedule, apt.ID.Hex(), err)
		}
		bookings = append(bookings, Booking{
			Date:  apt.Date.In(loc).Format(DateLayout),
			Start: start,
		})
	}
	return bookings, nil
}
