package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"already rounded", "4500", "4500"},
		{"half up on the cent", "10.005", "10.01"},
		{"below half", "10.0049", "10"},
		{"long tail", "194500.00000001", "194500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundCurrency(decimal.RequireFromString(tt.value))
			assert.True(t, result.Equal(decimal.RequireFromString(tt.expected)),
				"Expected %s, but got %s", tt.expected, result)
		})
	}
}

func TestPercentOf(t *testing.T) {
	result := PercentOf(decimal.NewFromInt(450000), decimal.NewFromInt(1))
	assert.True(t, result.Equal(decimal.NewFromInt(4500)))

	result = PercentOf(decimal.NewFromInt(1000000), decimal.NewFromInt(10))
	assert.True(t, result.Equal(decimal.NewFromInt(100000)))
}

func TestIsPaidOff(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		expected bool
	}{
		{"zero", "0", true},
		{"negative", "-12.5", true},
		{"residual drift", "0.0031", true},
		{"exactly epsilon", "0.005", true},
		{"one cent", "0.01", false},
		{"large", "194500", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPaidOff(decimal.RequireFromString(tt.balance)))
		})
	}
}

func TestFloorAtZero(t *testing.T) {
	assert.True(t, FloorAtZero(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, FloorAtZero(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}

func TestMinDecimal(t *testing.T) {
	a := decimal.NewFromInt(4500)
	b := decimal.NewFromInt(10000)
	assert.True(t, MinDecimal(a, b).Equal(a))
	assert.True(t, MinDecimal(b, a).Equal(a))
}

func TestIsWholeCents(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"10", true},
		{"10.01", true},
		{"10.000", true},
		{"10.005", false},
		{"0.001", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsWholeCents(decimal.RequireFromString(tt.value)))
		})
	}
}
