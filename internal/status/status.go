// Package status derives whether the store is accepting orders from the
// settings singleton and the current time. The state is never stored;
// callers recompute it on a polling interval and on settings-change
// notifications.
package status

import (
	"time"

	"storefront-service/internal/models"
)

// State is the derived open/closed state.
type State string

const (
	// StateOpen means checkout is permitted.
	StateOpen State = "open"
	// StateClosedManual means staff forced the store closed regardless of
	// the schedule.
	StateClosedManual State = "closed_manual"
	// StateClosedNoSchedule means today has no usable schedule entry.
	StateClosedNoSchedule State = "closed_no_schedule"
	// StateClosedSchedule means the current time falls outside today's
	// opening hours.
	StateClosedSchedule State = "closed_schedule"
)

// Status is the evaluation result. OpensAt/ClosesAt expose today's schedule
// strings when known; no cross-day lookahead is computed.
type Status struct {
	State       State  `json:"state"`
	IsOpen      bool   `json:"is_open"`
	ManualClose bool   `json:"manual_close"`
	OpensAt     string `json:"opens_at,omitempty"`
	ClosesAt    string `json:"closes_at,omitempty"`
}

var dayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// Evaluate derives the store status from settings and now. The caller is
// responsible for passing now in the store's timezone.
//
// Schedules are same-day ranges compared as zero-padded HH:MM strings; the
// single special case is a close of "00:00", which means open until
// midnight. Cross-midnight ranges such as 18:00-02:00 are not supported and
// are rejected at write time by the settings service.
func Evaluate(settings *models.StoreSettings, now time.Time) Status {
	if settings == nil {
		return Status{State: StateClosedNoSchedule}
	}

	if !settings.IsOpen {
		return Status{State: StateClosedManual, ManualClose: true}
	}

	day := dayKeys[int(now.Weekday())]
	hours, ok := settings.OpeningHours[day]
	if !ok || hours.Open == nil || hours.Close == nil {
		return Status{State: StateClosedNoSchedule}
	}

	open, close := *hours.Open, *hours.Close
	current := now.Format("15:04")

	// Lexicographic comparison is correct for zero-padded 24h strings.
	openNow := current >= open && (close == "00:00" || current < close)

	st := Status{
		OpensAt:  open,
		ClosesAt: close,
	}
	if openNow {
		st.State = StateOpen
		st.IsOpen = true
	} else {
		st.State = StateClosedSchedule
	}
	return st
}

// ValidDayKeys returns the weekday keys accepted in a schedule.
func ValidDayKeys() []string {
	return dayKeys[:]
}
