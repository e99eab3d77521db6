package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   TimeString
		wantErr bool
	}{
		{"morning", "08:00", false},
		{"last minute", "23:59", false},
		{"midnight", "00:00", false},
		{"hour 24", "24:00", true},
		{"single digit hour", "9:00", true},
		{"with seconds", "09:00:00", true},
		{"minutes out of range", "09:60", true},
		{"letters", "ab:cd", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("18:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("18:30"), ts)

	ts, err = NewTimeStringFromString("18h30")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
	assert.True(t, ts.IsZero())
}

func TestTimeString_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    TimeString
		wantErr bool
	}{
		{"postgres time column", "09:30:00", "09:30", false},
		{"short form", "19:00", "19:00", false},
		{"bytes", []byte("08:15:00"), "08:15", false},
		{"time value", time.Date(0, 1, 1, 7, 45, 0, 0, time.UTC), "07:45", false},
		{"null", nil, "", false},
		{"garbage", "xx:yy:zz", "", true},
		{"unsupported type", 930, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := TimeString("12:00")
			err := ts.Scan(tt.src)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()

	require.NoError(t, err)
	assert.Equal(t, "10:00", v)
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("13:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, m)

	_, err = TimeString("25:00").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_IsBefore(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("19:00"))
	assert.False(t, TimeString("19:00").IsBefore("08:00"))
	assert.False(t, TimeString("08:00").IsBefore("08:00"))
	assert.False(t, TimeString("bad").IsBefore("08:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name string
		time TimeString
		date time.Time
		want time.Time
	}{
		{"utc date", "09:30", time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)},
		{"drops clock of date", "18:00", time.Date(2025, 10, 15, 23, 59, 59, 0, time.UTC), time.Date(2025, 10, 15, 18, 0, 0, 0, time.UTC)},
		{"keeps location", "08:00", time.Date(2025, 10, 15, 12, 0, 0, 0, saoPaulo), time.Date(2025, 10, 15, 8, 0, 0, 0, saoPaulo)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.time.OnDate(tt.date)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
			assert.Equal(t, tt.want.Location(), got.Location())
		})
	}

	_, err := TimeString("24:00").OnDate(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
