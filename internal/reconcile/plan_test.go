package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanTransfer_TwoAccounts(t *testing.T) {
	called := false
	plan, err := PlanTransfer([]string{"1001", "1002", "1003"}, func() ([]string, error) {
		called = true
		return nil, nil
	})

	require.NoError(t, err)
	assert.Equal(t, Plan{From: "1001", To: "1002"}, plan)
	assert.False(t, called, "replenish must not run when enough accounts exist")
}

func TestPlanTransfer_ReplenishSucceeds(t *testing.T) {
	calls := 0
	plan, err := PlanTransfer([]string{"1001"}, func() ([]string, error) {
		calls++
		return []string{"1001", "1002"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, Plan{From: "1001", To: "1002"}, plan)
	assert.Equal(t, 1, calls)
}

func TestPlanTransfer_ReplenishStillShort(t *testing.T) {
	calls := 0
	_, err := PlanTransfer([]string{"1001"}, func() ([]string, error) {
		calls++
		return []string{"1001"}, nil
	})

	assert.ErrorIs(t, err, ErrNeedsMoreAccounts)
	assert.Equal(t, 1, calls, "replenish runs exactly once")
}

func TestPlanTransfer_ReplenishError(t *testing.T) {
	boom := errors.New("api down")
	_, err := PlanTransfer(nil, func() ([]string, error) {
		return nil, boom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNeedsMoreAccounts)
}

func TestPlanTransfer_NoReplenish(t *testing.T) {
	_, err := PlanTransfer([]string{"1001"}, nil)
	assert.ErrorIs(t, err, ErrNeedsMoreAccounts)
}

func TestPlanTransfer_Empty(t *testing.T) {
	_, err := PlanTransfer(nil, func() ([]string, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrNeedsMoreAccounts)
}
