package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_StateMachine(t *testing.T) {
	o, err := NewPendingOrder(1, "alice", 3, time.Now())
	require.NoError(t, err)
	assert.True(t, o.IsPending())

	require.NoError(t, o.Complete())
	assert.Equal(t, StatusCompleted, o.Status)

	assert.ErrorIs(t, o.Complete(), ErrOrderAlreadyProcessed, "Completed是终态")
}

func TestNewPendingOrder_InvalidQuantity(t *testing.T) {
	_, err := NewPendingOrder(1, "alice", 0, time.Now())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, Status("Cancelled").Valid())
}
