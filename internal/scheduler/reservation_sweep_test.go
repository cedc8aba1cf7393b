package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	runs atomic.Int32
}

func (s *countingSweeper) RunReservationSweep() int {
	s.runs.Add(1)
	return 0
}

func TestStartStop(t *testing.T) {
	sweeper := &countingSweeper{}
	scheduler := NewReservationSweepScheduler(sweeper, "*/10 * * * *")

	require.NoError(t, scheduler.Start(context.Background()))
	assert.True(t, scheduler.IsRunning())
	require.NotNil(t, scheduler.GetNextRunTime())

	// Idempotent start.
	require.NoError(t, scheduler.Start(context.Background()))

	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())
	assert.Nil(t, scheduler.GetNextRunTime())

	// Idempotent stop.
	scheduler.Stop()
}

func TestInvalidSchedule(t *testing.T) {
	scheduler := NewReservationSweepScheduler(&countingSweeper{}, "not a schedule")
	assert.Error(t, scheduler.Start(context.Background()))
}

func TestRunNow(t *testing.T) {
	sweeper := &countingSweeper{}
	scheduler := NewReservationSweepScheduler(sweeper, "*/10 * * * *")

	scheduler.RunNow()
	assert.Eventually(t, func() bool {
		return sweeper.runs.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestContextCancellationStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	scheduler := NewReservationSweepScheduler(&countingSweeper{}, "*/10 * * * *")
	require.NoError(t, scheduler.Start(ctx))

	cancel()
	assert.Eventually(t, func() bool {
		return !scheduler.IsRunning()
	}, time.Second, 10*time.Millisecond)
}
