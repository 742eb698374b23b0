package admin_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/admin"
	"github.com/rpggio/sellerconsole/internal/repository/mocks"
	"github.com/rpggio/sellerconsole/internal/simulate"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	resets int
	err    error
}

func (s *countingStore) Reset(context.Context) error {
	s.resets++
	return s.err
}

func TestAdminService_ResetData(t *testing.T) {
	ctx := context.Background()
	a, b := &countingStore{}, &countingStore{}
	acts := &mocks.ActivityLogger{}
	acts.On("LogActivity", ctx, mock.MatchedBy(func(e *activity.Entry) bool { return e.Type == activity.TypeDataReset })).Return(nil)

	svc := admin.NewService(simulate.NewRatePolicy(0, nil), acts, nil, a, b)
	require.NoError(t, svc.ResetData(ctx))
	require.Equal(t, 1, a.resets)
	require.Equal(t, 1, b.resets)
	acts.AssertExpectations(t)
}

func TestAdminService_ResetStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	a, b := &countingStore{err: boom}, &countingStore{}

	svc := admin.NewService(simulate.NewRatePolicy(0, nil), nil, nil, a, b)
	require.ErrorIs(t, svc.ResetData(context.Background()), boom)
	require.Zero(t, b.resets)
}

func TestAdminService_ErrorRate(t *testing.T) {
	ctx := context.Background()
	policy := simulate.NewRatePolicy(simulate.DefaultErrorRate, nil)
	svc := admin.NewService(policy, nil, nil)

	require.Equal(t, simulate.DefaultErrorRate, svc.ErrorRate())

	stored, err := svc.SetErrorRate(ctx, 1.5)
	require.NoError(t, err)
	require.Equal(t, 1.0, stored)
	require.True(t, policy.ShouldFail(simulate.OpListLeads))

	stored, err = svc.SetErrorRate(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, stored)
	require.False(t, policy.ShouldFail(simulate.OpListLeads))

	_, err = svc.SetErrorRate(ctx, math.NaN())
	require.ErrorIs(t, err, admin.ErrInvalidInput)
	require.Equal(t, 0.0, svc.ErrorRate())
}
