package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hhmm string) time.Time {
	t, _ := time.Parse("15:04", hhmm)
	return time.Date(2024, 3, 14, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func TestAvailability_Contains(t *testing.T) {
	breakfast := Availability{StartTime: "07:30", EndTime: "10:30"}
	lateNight := Availability{StartTime: "22:00", EndTime: "02:00"}

	tests := []struct {
		name   string
		window Availability
		now    string
		want   bool
	}{
		{"before_start", breakfast, "07:29", false},
		{"at_start", breakfast, "07:30", true},
		{"inside", breakfast, "09:15", true},
		{"at_end_is_closed", breakfast, "10:30", false},
		{"overnight_evening", lateNight, "23:10", true},
		{"overnight_after_midnight", lateNight, "01:59", true},
		{"overnight_gap", lateNight, "12:00", false},
		{"overnight_end", lateNight, "02:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Contains(at(tt.now)))
		})
	}
}

func TestMenuItem_AvailableAt(t *testing.T) {
	idli := MenuItem{Name: "Idli", InStock: true, ScheduledAvailability: &Availability{StartTime: "07:30", EndTime: "10:30"}}
	tea := MenuItem{Name: "Tea", InStock: true}
	soldOut := MenuItem{Name: "Vada", InStock: false}

	assert.True(t, idli.AvailableAt(at("08:00")))
	assert.False(t, idli.AvailableAt(at("13:00")))
	assert.True(t, tea.AvailableAt(at("23:59")))
	assert.False(t, soldOut.AvailableAt(at("08:00")))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, s.IsOpen)
	assert.Equal(t, 5.0, s.TaxRate)
	assert.Equal(t, "08:00", s.OpeningTime)
	assert.Equal(t, "20:00", s.ClosingTime)
}
