package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to processing", OrderStatusPending, OrderStatusProcessing, true},
		{"processing to ready_to_deliver", OrderStatusProcessing, OrderStatusReadyToDeliver, true},
		{"ready_to_deliver to shipped", OrderStatusReadyToDeliver, OrderStatusShipped, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"skip a stage", OrderStatusPending, OrderStatusReadyToDeliver, false},
		{"backwards", OrderStatusShipped, OrderStatusProcessing, false},
		{"same status", OrderStatusProcessing, OrderStatusProcessing, false},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, true},
		{"delivered to cancelled", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled to processing", OrderStatusCancelled, OrderStatusProcessing, false},
		{"cancelled to cancelled", OrderStatusCancelled, OrderStatusCancelled, false},
		{"delivered to delivered", OrderStatusDelivered, OrderStatusDelivered, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	require.True(t, OrderStatusDelivered.IsTerminal())
	require.True(t, OrderStatusCancelled.IsTerminal())
	require.False(t, OrderStatusPending.IsTerminal())
	require.False(t, OrderStatusShipped.IsTerminal())
}

func TestIsValidOrderStatus(t *testing.T) {
	require.True(t, IsValidOrderStatus("pending"))
	require.True(t, IsValidOrderStatus("cancelled"))
	require.False(t, IsValidOrderStatus("refunded"))
	require.False(t, IsValidOrderStatus(""))
}
