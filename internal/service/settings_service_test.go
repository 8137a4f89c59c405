package service

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func hours(open, close string) models.DayHours {
	return models.DayHours{Open: &open, Close: &close}
}

func TestValidateScheduleAccepts(t *testing.T) {
	schedule := models.WeeklySchedule{
		"mon": hours("18:00", "23:00"),
		"fri": hours("18:00", "00:00"),
		"sun": {},
	}
	assert.NoError(t, validateSchedule(schedule))
}

func TestValidateScheduleRejectsUnknownDay(t *testing.T) {
	err := validateSchedule(models.WeeklySchedule{"monday": hours("18:00", "23:00")})
	assert.ErrorContains(t, err, "unknown weekday key")
}

func TestValidateScheduleRejectsBadTimes(t *testing.T) {
	assert.Error(t, validateSchedule(models.WeeklySchedule{"mon": hours("25:00", "23:00")}))
	assert.Error(t, validateSchedule(models.WeeklySchedule{"mon": hours("18:00", "23:60")}))
	assert.Error(t, validateSchedule(models.WeeklySchedule{"mon": hours("6pm", "11pm")}))
}

func TestValidateScheduleRejectsCloseBeforeOpen(t *testing.T) {
	err := validateSchedule(models.WeeklySchedule{"mon": hours("18:00", "17:00")})
	assert.ErrorContains(t, err, "close time must be after open time")

	// Equal open and close is also rejected; midnight uses the sentinel.
	assert.Error(t, validateSchedule(models.WeeklySchedule{"mon": hours("18:00", "18:00")}))
	assert.NoError(t, validateSchedule(models.WeeklySchedule{"mon": hours("18:00", "00:00")}))
}
