package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBillLineTotal(t *testing.T) {
	line := BillLine{
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.RequireFromString("2.50"),
	}
	assert.True(t, line.LineTotal().Equal(decimal.RequireFromString("25.00")))

	free := BillLine{Quantity: decimal.NewFromInt(3)}
	assert.True(t, free.LineTotal().IsZero())
}

func TestPrescriptionBilledQuantity(t *testing.T) {
	tests := []struct {
		name      string
		frequency int
		duration  int
		want      int
	}{
		{"twice a day for five days", 2, 5, 10},
		{"single dose", 1, 1, 1},
		{"zero duration floors to one", 3, 0, 1},
		{"zero frequency floors to one", 0, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Prescription{FrequencyPerDay: tt.frequency, DurationDays: tt.duration}
			assert.Equal(t, tt.want, p.BilledQuantity())
		})
	}
}
