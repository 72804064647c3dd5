package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())
	assert.Equal(t, "2024-02-29", d.String())

	_, err = Parse("2023-02-29")
	assert.Error(t, err)

	_, err = Parse("29/02/2024")
	assert.Error(t, err)
}

func TestFromTimeDropsClock(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	d := FromTime(time.Date(2024, 3, 10, 23, 30, 0, 0, loc))
	assert.Equal(t, "2024-03-10", d.String())
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		months   int
		expected string
	}{
		{"plain", "2024-01-15", 1, "2024-02-15"},
		{"overflow into march in leap year", "2024-01-31", 1, "2024-03-02"},
		{"overflow into march", "2023-01-31", 1, "2023-03-03"},
		{"across year", "2024-11-30", 3, "2025-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MustParse(tt.start).AddMonths(tt.months).String())
		})
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		months   int
		anchor   int
		expected string
	}{
		{"leap february", "2024-01-31", 1, 31, "2024-02-29"},
		{"short february", "2023-01-31", 1, 31, "2023-02-28"},
		{"thirty day month", "2024-03-31", 1, 31, "2024-04-30"},
		{"anchor fits", "2024-01-15", 2, 15, "2024-03-15"},
		{"across year", "2024-12-31", 2, 31, "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MustParse(tt.start).AddMonthsClamped(tt.months, tt.anchor).String())
		})
	}
}

func TestDaysUntil(t *testing.T) {
	a := MustParse("2024-03-01")
	b := MustParse("2024-03-31")
	assert.Equal(t, 30, a.DaysUntil(b))
	assert.Equal(t, -30, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))
	assert.Equal(t, 366, MustParse("2024-01-01").DaysUntil(MustParse("2025-01-01")))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2100, time.February))
	assert.Equal(t, 31, DaysIn(2024, time.December))
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}

	out, err := json.Marshal(wrapper{Start: MustParse("2024-01-31")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-01-31","end":null}`, string(out))

	var in wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-05-06","end":""}`), &in))
	assert.Equal(t, "2024-05-06", in.Start.String())
	assert.True(t, in.End.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"start":"2024-13-01"}`), &in))
}

func TestScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-07-04"))
	assert.Equal(t, "2024-07-04", d.String())

	require.NoError(t, d.Scan([]byte("2024-07-05")))
	assert.Equal(t, "2024-07-05", d.String())

	require.NoError(t, d.Scan(time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-07-06", d.String())

	require.NoError(t, d.Scan("2024-07-07T00:00:00Z"))
	assert.Equal(t, "2024-07-07", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = MustParse("2024-01-01").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", v)
}
