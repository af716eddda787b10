package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWorkingHours(t *testing.T) {
	wh := DefaultWorkingHours()

	assert.Len(t, wh, 7)
	for _, key := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		day, ok := wh.Day(key)
		assert.True(t, ok, key)
		assert.Equal(t, "09:00", day.Start)
		assert.Equal(t, "17:00", day.End)
	}
	_, ok := wh.Day("saturday")
	assert.False(t, ok)
	_, ok = wh.Day("sunday")
	assert.False(t, ok)
}

func TestWeekdayKey(t *testing.T) {
	assert.Equal(t, "sunday", WeekdayKey(time.Sunday))
	assert.Equal(t, "wednesday", WeekdayKey(time.Wednesday))
	assert.True(t, IsWeekdayKey("friday"))
	assert.False(t, IsWeekdayKey("Friday"))
	assert.False(t, IsWeekdayKey("holiday"))
}

func TestWorkingHoursDayMissingKey(t *testing.T) {
	wh := WorkingHours{"monday": {Enabled: true, Start: "08:00", End: "12:00"}}

	_, ok := wh.Day("tuesday")
	assert.False(t, ok)

	var empty WorkingHours
	_, ok = empty.Day("monday")
	assert.False(t, ok)
}
