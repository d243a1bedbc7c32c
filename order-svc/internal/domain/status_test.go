package domain

import (
	"encoding/json"
	"testing"

	"campus-canteen/apperr"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current Status
		next    Status
		ok      bool
	}{
		{StatusPlaced, StatusPreparing, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusCompleted, true},
		{StatusCompleted, "", false},
		{StatusCancelled, "", false},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.current), func(t *testing.T) {
			next, ok := NextStatus(testCase.current)
			assert.Equal(t, testCase.ok, ok)
			assert.Equal(t, testCase.next, next)
		})
	}
}

func TestCanTransition(t *testing.T) {
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			next, hasNext := NextStatus(from)
			want := !from.Terminal() && (to == StatusCancelled || (hasNext && to == next))
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CanTransition(StatusCompleted, StatusPreparing))
	assert.False(t, CanTransition(StatusPlaced, StatusCompleted))
	assert.False(t, CanTransition(StatusPlaced, StatusPlaced))
	assert.False(t, CanTransition("Lost", StatusPreparing))
	assert.True(t, CanTransition(StatusReady, StatusCancelled))
}

func TestStatus_ExhaustiveMappings(t *testing.T) {
	colors := map[string]bool{}
	for _, s := range AllStatuses {
		assert.True(t, s.Valid())
		assert.NotPanics(t, func() { colors[s.BadgeColor()] = true })
	}
	assert.Len(t, colors, len(AllStatuses))
	assert.Panics(t, func() { Status("Lost").BadgeColor() })
}

func TestStatus_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Status Status `json:"status"`
	}

	assert.NoError(t, json.Unmarshal([]byte(`{"status":"Ready to Pickup"}`), &payload))
	assert.Equal(t, StatusReady, payload.Status)

	err := json.Unmarshal([]byte(`{"status":"Shipped"}`), &payload)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestNewQuote(t *testing.T) {
	items := []OrderItem{
		{MenuItemID: 1, Name: "Masala Dosa", Price: 45, Quantity: 2},
		{MenuItemID: 2, Name: "Filter Coffee", Price: 12, Quantity: 1},
	}

	quote := NewQuote(items, 5)

	assert.Equal(t, 102.0, quote.Subtotal)
	assert.InDelta(t, 5.10, quote.Tax, 1e-9)
	assert.InDelta(t, 107.10, quote.Total, 1e-9)
	assert.True(t, quote.Reconciles(107.10))
	assert.True(t, quote.Reconciles(107.11))
	assert.False(t, quote.Reconciles(107.20))
	assert.False(t, quote.Reconciles(102))
}

func TestNewQuote_ZeroTax(t *testing.T) {
	quote := NewQuote([]OrderItem{{Price: 19.99, Quantity: 3}}, 0)
	assert.InDelta(t, 59.97, quote.Total, 1e-9)
	assert.Equal(t, 0.0, quote.Tax)
}
