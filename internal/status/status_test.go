package status

import (
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

// at returns a time on Saturday 2024-06-15 at the given clock.
func at(hour, min int) time.Time {
	return time.Date(2024, 6, 15, hour, min, 0, 0, time.UTC)
}

func saturdaySettings(open, close string) *models.StoreSettings {
	return &models.StoreSettings{
		IsOpen: true,
		OpeningHours: models.WeeklySchedule{
			"sat": {Open: strptr(open), Close: strptr(close)},
		},
	}
}

func TestEvaluateManualOverrideWins(t *testing.T) {
	s := saturdaySettings("00:00", "23:59")
	s.IsOpen = false

	st := Evaluate(s, at(12, 0))
	assert.Equal(t, StateClosedManual, st.State)
	assert.False(t, st.IsOpen)
	assert.True(t, st.ManualClose)
}

func TestEvaluateNoSchedule(t *testing.T) {
	st := Evaluate(&models.StoreSettings{IsOpen: true}, at(12, 0))
	assert.Equal(t, StateClosedNoSchedule, st.State)

	// Day present but with a null bound still counts as closed.
	s := &models.StoreSettings{
		IsOpen:       true,
		OpeningHours: models.WeeklySchedule{"sat": {Open: strptr("18:00"), Close: nil}},
	}
	st = Evaluate(s, at(19, 0))
	assert.Equal(t, StateClosedNoSchedule, st.State)

	st = Evaluate(nil, at(12, 0))
	assert.Equal(t, StateClosedNoSchedule, st.State)
}

func TestEvaluateScheduleBoundaries(t *testing.T) {
	s := saturdaySettings("18:00", "23:00")

	cases := []struct {
		hour, min int
		open      bool
	}{
		{17, 59, false},
		{18, 0, true},
		{22, 59, true},
		{23, 0, false},
	}

	for _, tc := range cases {
		st := Evaluate(s, at(tc.hour, tc.min))
		assert.Equal(t, tc.open, st.IsOpen, "%02d:%02d", tc.hour, tc.min)
		if tc.open {
			assert.Equal(t, StateOpen, st.State)
		} else {
			assert.Equal(t, StateClosedSchedule, st.State)
		}
	}
}

func TestEvaluateMidnightCloseSentinel(t *testing.T) {
	s := saturdaySettings("18:00", "00:00")

	st := Evaluate(s, at(23, 59))
	assert.True(t, st.IsOpen, "open until midnight")

	// Same-day-only limitation: at 00:30 the comparison runs against the
	// same day's open time, so the store reads closed even though staff may
	// intend to be open into the small hours.
	st = Evaluate(s, at(0, 30))
	assert.False(t, st.IsOpen)
	assert.Equal(t, StateClosedSchedule, st.State)
}

func TestEvaluateExposesSameDayHoursWhenClosed(t *testing.T) {
	s := saturdaySettings("18:00", "23:00")

	st := Evaluate(s, at(10, 0))
	assert.Equal(t, StateClosedSchedule, st.State)
	assert.Equal(t, "18:00", st.OpensAt)
	assert.Equal(t, "23:00", st.ClosesAt)
}

func TestEvaluateUsesWeekday(t *testing.T) {
	// Schedule only covers Sunday; the Saturday probe is closed.
	s := &models.StoreSettings{
		IsOpen: true,
		OpeningHours: models.WeeklySchedule{
			"sun": {Open: strptr("00:00"), Close: strptr("23:59")},
		},
	}

	assert.Equal(t, StateClosedNoSchedule, Evaluate(s, at(12, 0)).State)

	sunday := time.Date(2024, 6, 16, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, StateOpen, Evaluate(s, sunday).State)
}
