package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHappyPathTransitions(t *testing.T) {
	session := &Session{State: StateSelectingExperiences}

	for _, next := range []FlowState{
		StateSelectingSlot,
		StateSelectingGuests,
		StateAwaitingDetails,
		StateAwaitingPayment,
		StateConfirmed,
	} {
		require.NoError(t, session.Transition(next))
		assert.Equal(t, next, session.State)
	}
	assert.True(t, session.State.IsTerminal())
}

func TestSessionRejectsSkippedSteps(t *testing.T) {
	tests := []struct {
		from FlowState
		to   FlowState
	}{
		{StateSelectingExperiences, StateSelectingGuests},
		{StateSelectingExperiences, StateAwaitingPayment},
		{StateSelectingExperiences, StateConfirmed},
		{StateSelectingSlot, StateAwaitingDetails},
		{StateSelectingGuests, StateAwaitingPayment},
		{StateAwaitingDetails, StateConfirmed},
	}

	for _, tt := range tests {
		session := &Session{State: tt.from}
		err := session.Transition(tt.to)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
		assert.Equal(t, tt.from, session.State, "state must not change on rejection")
	}
}

func TestSessionTerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []FlowState{StateConfirmed, StateCancelled, StateFailed} {
		session := &Session{State: terminal}
		for _, target := range []FlowState{
			StateSelectingExperiences, StateSelectingSlot, StateSelectingGuests,
			StateAwaitingDetails, StateAwaitingPayment, StateConfirmed, StateCancelled, StateFailed,
		} {
			assert.ErrorIs(t, session.Transition(target), ErrInvalidTransition,
				"%s -> %s should be rejected", terminal, target)
		}
	}
}

func TestSessionCancellableFromEveryActiveState(t *testing.T) {
	for _, active := range []FlowState{
		StateSelectingExperiences, StateSelectingSlot, StateSelectingGuests,
		StateAwaitingDetails, StateAwaitingPayment,
	} {
		session := &Session{State: active}
		assert.NoError(t, session.Transition(StateCancelled), "cancel from %s", active)

		session = &Session{State: active}
		assert.NoError(t, session.Transition(StateFailed), "fail from %s", active)
	}
}

func TestSessionBackwardEdges(t *testing.T) {
	session := &Session{State: StateAwaitingPayment}
	// Capacity conflict path: back to slot selection, then forward again.
	require.NoError(t, session.Transition(StateSelectingSlot))
	require.NoError(t, session.Transition(StateSelectingGuests))
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusCancelled.IsTerminal())
}
