package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name        string
		from        BookingStatus
		to          BookingStatus
		shouldAllow bool
	}{
		{"payment pending to pending", StatusPaymentPending, StatusPending, true},
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"payment pending to cancelled", StatusPaymentPending, StatusCancelled, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"approved to cancelled", StatusApproved, StatusCancelled, true},
		// Invalid transitions
		{"payment pending to approved", StatusPaymentPending, StatusApproved, false},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"rejected to pending", StatusRejected, StatusPending, false},
		{"cancelled to pending", StatusCancelled, StatusPending, false},
		{"rejected to cancelled", StatusRejected, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed := CanTransition(tt.from, tt.to)
			if allowed != tt.shouldAllow {
				t.Errorf("transition %s -> %s: expected allowed=%v, got %v",
					tt.from, tt.to, tt.shouldAllow, allowed)
			}
		})
	}
}

func TestStatusBlocks(t *testing.T) {
	assert.True(t, StatusPaymentPending.Blocks())
	assert.True(t, StatusPending.Blocks())
	assert.True(t, StatusApproved.Blocks())
	assert.False(t, StatusRejected.Blocks())
	assert.False(t, StatusCancelled.Blocks())
	assert.False(t, BookingStatus("unknown").Blocks())
}

func TestBlockingStatuses(t *testing.T) {
	statuses := BlockingStatuses()
	assert.Len(t, statuses, 3)
	for _, s := range statuses {
		assert.True(t, s.Blocks())
	}
}
