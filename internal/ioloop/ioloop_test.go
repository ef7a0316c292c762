package ioloop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRunReturnsResult(t *testing.T) {
	defer goleak.VerifyNone(t)
	l := New(context.Background())
	v, err := Run(l, func(ctx context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	require.Equal(t, 42, v)
	l.Cancel()
	_ = l.Drain()
}

func TestRunPropagatesError(t *testing.T) {
	defer goleak.VerifyNone(t)
	l := New(context.Background())
	boom := errors.New("boom")
	_, err := Run(l, func(ctx context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	l.Cancel()
	_ = l.Drain()
}

func TestSleepHonorsCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)
	l := New(context.Background())
	l.Cancel()
	err := l.Sleep(time.Hour)
	require.Error(t, err)
	_ = l.Drain()
}

func TestSleepCompletesNormally(t *testing.T) {
	defer goleak.VerifyNone(t)
	l := New(context.Background())
	err := l.Sleep(time.Millisecond)
	require.NoError(t, err)
	l.Cancel()
	_ = l.Drain()
}
