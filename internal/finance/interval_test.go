package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/date"
)

func TestIntervalsElapsed(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		unit     domain.IntervalUnit
		value    int
		expected int
	}{
		{"days", "2024-01-01", "2024-01-31", domain.IntervalDays, 1, 30},
		{"days with multiplier", "2024-01-01", "2024-01-31", domain.IntervalDays, 7, 4},
		{"weeks complete", "2024-01-01", "2024-01-29", domain.IntervalWeeks, 1, 4},
		{"weeks partial", "2024-01-01", "2024-01-28", domain.IntervalWeeks, 1, 3},
		{"fortnights", "2024-01-01", "2024-01-29", domain.IntervalWeeks, 2, 2},
		{"months complete", "2024-01-15", "2024-03-15", domain.IntervalMonths, 1, 2},
		{"months incomplete final month", "2024-01-15", "2024-03-14", domain.IntervalMonths, 1, 1},
		{"month end into leap february", "2024-01-31", "2024-02-29", domain.IntervalMonths, 1, 0},
		{"quarters", "2024-01-01", "2024-12-31", domain.IntervalMonths, 3, 3},
		{"two months from the example", "2024-01-01", "2024-03-01", domain.IntervalMonths, 1, 2},
		{"years leap day not reached", "2020-02-29", "2021-02-28", domain.IntervalYears, 1, 0},
		{"years leap day passed", "2020-02-29", "2021-03-01", domain.IntervalYears, 1, 1},
		{"years earlier month", "2020-06-01", "2022-05-31", domain.IntervalYears, 1, 1},
		{"five year blocks", "2020-01-01", "2030-01-01", domain.IntervalYears, 5, 2},
		{"zero multiplier treated as one", "2024-01-01", "2024-01-11", domain.IntervalDays, 0, 10},
		{"end before start", "2024-03-01", "2024-01-01", domain.IntervalMonths, 1, 0},
		{"unknown unit", "2024-01-01", "2025-01-01", domain.IntervalUnit("fortnights"), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntervalsElapsed(date.MustParse(tt.start), date.MustParse(tt.end), domain.Cadence{Unit: tt.unit, Value: tt.value})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIntervalsElapsedSameDayIsZero(t *testing.T) {
	d := date.MustParse("2024-01-31")
	for _, unit := range []domain.IntervalUnit{domain.IntervalDays, domain.IntervalWeeks, domain.IntervalMonths, domain.IntervalYears} {
		for _, v := range []int{1, 2, 5} {
			assert.Equal(t, 0, IntervalsElapsed(d, d, domain.Cadence{Unit: unit, Value: v}), "%s x%d", unit, v)
		}
	}
}

func TestIntervalsElapsedNonDecreasing(t *testing.T) {
	starts := []string{"2024-01-31", "2023-02-28", "2024-02-29", "2024-07-15"}
	units := []domain.IntervalUnit{domain.IntervalDays, domain.IntervalWeeks, domain.IntervalMonths, domain.IntervalYears}

	for _, s := range starts {
		start := date.MustParse(s)
		for _, unit := range units {
			for _, v := range []int{1, 3} {
				cadence := domain.Cadence{Unit: unit, Value: v}
				prev := 0
				for i := 0; i <= 3*366; i++ {
					got := IntervalsElapsed(start, start.AddDays(i), cadence)
					if got < prev {
						t.Fatalf("%s %s: count dropped from %d to %d at %s", s, cadence, prev, got, start.AddDays(i))
					}
					prev = got
				}
			}
		}
	}
}
