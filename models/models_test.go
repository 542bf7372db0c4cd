package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus(t *testing.T) {
	assert.False(t, OrderPending.IsTerminal())
	assert.True(t, OrderCompleted.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())

	assert.True(t, OrderPending.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
}

func TestTimestamp_SortsLexicographically(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*3600))

	a := Timestamp(base)
	b := Timestamp(base.Add(10 * time.Millisecond))
	c := Timestamp(base.Add(time.Second))

	assert.Equal(t, "2025-03-01T00:00:00.000Z", a)
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestSumSubtotals(t *testing.T) {
	total, ok := SumSubtotals([]OrderLine{{Subtotal: 1200}, {Subtotal: 500}})
	assert.True(t, ok)
	assert.Equal(t, int64(1700), total)

	total, ok = SumSubtotals(nil)
	assert.True(t, ok)
	assert.Zero(t, total)

	_, ok = SumSubtotals([]OrderLine{{Subtotal: math.MaxInt64}, {Subtotal: 1}})
	assert.False(t, ok)
}

func TestLineSubtotal(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		quantity int
		want     int64
		ok       bool
	}{
		{"simple", 600, 2, 1200, true},
		{"zero price", 0, 5, 0, true},
		{"max fits", math.MaxInt64, 1, math.MaxInt64, true},
		{"overflow", 600, math.MaxInt64 / 300, 0, false},
		{"negative price", -1, 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineSubtotal(tt.price, tt.quantity)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMenuItem_OffersBlend(t *testing.T) {
	item := MenuItem{AvailableBlends: []string{"b1", "b2"}}
	assert.True(t, item.OffersBlend("b2"))
	assert.False(t, item.OffersBlend("b3"))
}
