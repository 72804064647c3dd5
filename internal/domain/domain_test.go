package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentType(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		interest  int64
		expected  PaymentType
	}{
		{"both parts", 5500, 4500, PaymentTypeMixed},
		{"principal only", 5500, 0, PaymentTypePrincipal},
		{"interest only", 0, 4500, PaymentTypeInterest},
		{"empty", 0, 0, PaymentTypeInterest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivePaymentType(decimal.NewFromInt(tt.principal), decimal.NewFromInt(tt.interest))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPaymentSetSplit(t *testing.T) {
	p := &Payment{}
	p.SetSplit(decimal.NewFromInt(5500), decimal.NewFromInt(4500))

	assert.True(t, p.Amount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, PaymentTypeMixed, p.PaymentType)
}

func TestCadenceOrDefault(t *testing.T) {
	assert.Equal(t, Monthly, Cadence{}.OrDefault())
	assert.Equal(t, Monthly, Cadence{Unit: IntervalWeeks}.OrDefault())

	weekly := Cadence{Unit: IntervalWeeks, Value: 2}
	assert.Equal(t, weekly, weekly.OrDefault())
	assert.Equal(t, "every 2 weeks", weekly.String())
}

func TestStatusAndUnitValidity(t *testing.T) {
	assert.True(t, LoanStatusPaidOff.IsValid())
	assert.False(t, LoanStatus("closed").IsValid())
	assert.True(t, IntervalYears.IsValid())
	assert.False(t, IntervalUnit("fortnights").IsValid())
}
