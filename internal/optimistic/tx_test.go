package optimistic_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/sellerconsole/internal/optimistic"
	"github.com/stretchr/testify/require"
)

func TestDo_Commits(t *testing.T) {
	var tx optimistic.Tx[string]
	value := "New"

	err := optimistic.Do(context.Background(), &tx, value,
		func(string) string { return "Contacted" },
		func(v string) { value = v },
		func(context.Context) error {
			require.Equal(t, "Contacted", value, "change visible before confirmation")
			require.Equal(t, optimistic.Pending, tx.State())
			return nil
		})
	require.NoError(t, err)
	require.Equal(t, "Contacted", value)
	require.Equal(t, optimistic.Committed, tx.State())
}

func TestDo_RollsBack(t *testing.T) {
	var tx optimistic.Tx[[]int]
	items := []int{1, 2, 3}
	boom := errors.New("UPDATE_FAILED")

	err := optimistic.Do(context.Background(), &tx, items,
		func(cur []int) []int { return append([]int{}, 9, cur[1], cur[2]) },
		func(v []int) { items = v },
		func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, []int{1, 2, 3}, items)
	require.Equal(t, optimistic.RolledBack, tx.State())
	require.ErrorIs(t, tx.Err(), boom)
}

func TestTx_Transitions(t *testing.T) {
	var tx optimistic.Tx[int]
	require.Equal(t, optimistic.Idle, tx.State())
	require.ErrorIs(t, tx.Commit(), optimistic.ErrNotPending)
	_, err := tx.Rollback(nil)
	require.ErrorIs(t, err, optimistic.ErrNotPending)

	require.NoError(t, tx.Begin(1))
	require.ErrorIs(t, tx.Begin(2), optimistic.ErrPending)
	snapshot, err := tx.Rollback(errors.New("x"))
	require.NoError(t, err)
	require.Equal(t, 1, snapshot)

	require.NoError(t, tx.Begin(5))
	require.NoError(t, tx.Commit())
	require.Nil(t, tx.Err())
	require.Equal(t, "committed", tx.State().String())
}

func TestDo_RejectsWhilePending(t *testing.T) {
	var tx optimistic.Tx[int]
	require.NoError(t, tx.Begin(0))

	called := false
	err := optimistic.Do(context.Background(), &tx, 1,
		func(v int) int { return v + 1 },
		func(int) { called = true },
		func(context.Context) error { return nil })
	require.ErrorIs(t, err, optimistic.ErrPending)
	require.False(t, called)
}
