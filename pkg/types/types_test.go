package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "morning slot", input: "09:00"},
		{name: "afternoon slot", input: "17:30"},
		{name: "midnight", input: "00:00"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "noon!", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	end, err := TimeString("12:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("13:00"), end)

	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:30").IsBefore("14:00"))
	assert.True(t, TimeString("17:30").IsAfter("09:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)

	at, err := TimeString("14:30").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, loc), at)
}

func TestTimeString_UnmarshalJSON(t *testing.T) {
	var ts TimeString
	require.NoError(t, json.Unmarshal([]byte(`"10:00"`), &ts))
	assert.Equal(t, TimeString("10:00"), ts)

	assert.Error(t, json.Unmarshal([]byte(`"10am"`), &ts))
}

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	key := NewDateKey(time.Date(2025, 1, 5, 23, 30, 0, 0, loc))
	assert.Equal(t, DateKey("2025-01-05"), key)

	parsed, err := ParseDateKey("2025-02-28")
	require.NoError(t, err)

	midnight, err := parsed.Time(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, loc), midnight)

	_, err = ParseDateKey("2025-02-30")
	assert.ErrorIs(t, err, ErrInvalidDateKey)

	_, err = ParseDateKey("2025-2-3")
	assert.ErrorIs(t, err, ErrInvalidDateKey)
}
