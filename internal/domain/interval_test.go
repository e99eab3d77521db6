package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 13, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	booked := Interval{Start: at(9, 0), End: at(10, 0)}

	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{name: "ends exactly at start", candidate: Interval{Start: at(8, 30), End: at(9, 0)}, want: false},
		{name: "starts exactly at end", candidate: Interval{Start: at(10, 0), End: at(10, 30)}, want: false},
		{name: "same interval", candidate: booked, want: true},
		{name: "covers start", candidate: Interval{Start: at(8, 30), End: at(9, 15)}, want: true},
		{name: "covers end", candidate: Interval{Start: at(9, 45), End: at(10, 30)}, want: true},
		{name: "inside", candidate: Interval{Start: at(9, 10), End: at(9, 20)}, want: true},
		{name: "surrounds", candidate: Interval{Start: at(8, 0), End: at(11, 0)}, want: true},
		{name: "far before", candidate: Interval{Start: at(6, 0), End: at(7, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(booked, tt.candidate))
			assert.Equal(t, tt.want, Overlaps(tt.candidate, booked), "overlap must be symmetric")
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	window := Interval{Start: at(8, 0), End: at(19, 0)}

	assert.True(t, window.Contains(NewInterval(at(17, 30), 90*time.Minute)))
	assert.False(t, window.Contains(NewInterval(at(18, 0), 90*time.Minute)))
	assert.False(t, window.Contains(NewInterval(at(7, 30), 30*time.Minute)))
}
