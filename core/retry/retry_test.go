package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bulk-ingest/core/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSleeper struct {
	waits []time.Duration
}

func (f *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	f.waits = append(f.waits, d)
	return ctx.Err()
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	s := &fakeSleeper{}
	attempts, err := retry.Do(context.Background(), retry.Policy{Attempts: 3, Base: time.Second, Sleep: s.Sleep},
		func(ctx context.Context, attempt int) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, s.waits)
}

func TestDo_RecoversAfterFailures(t *testing.T) {
	s := &fakeSleeper{}
	calls := 0
	attempts, err := retry.Do(context.Background(), retry.Policy{Attempts: 3, Base: 250 * time.Millisecond, Sleep: s.Sleep},
		func(ctx context.Context, attempt int) error {
			calls++
			if attempt < 3 {
				return errors.New("deadlock")
			}
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 500 * time.Millisecond}, s.waits)
}

func TestDo_Exhausted(t *testing.T) {
	s := &fakeSleeper{}
	cause := errors.New("connection reset")
	var retried []int

	attempts, err := retry.Do(context.Background(), retry.Policy{
		Attempts: 4,
		Base:     100 * time.Millisecond,
		Sleep:    s.Sleep,
		OnRetry: func(attempt int, wait time.Duration, err error) {
			retried = append(retried, attempt)
		},
	}, func(ctx context.Context, attempt int) error { return cause })

	require.Error(t, err)
	assert.ErrorIs(t, err, retry.ErrExhausted)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 4, attempts)
	assert.Equal(t, []int{1, 2, 3}, retried)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, s.waits)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	attempts, err := retry.Do(context.Background(), retry.Policy{}, func(ctx context.Context, attempt int) error {
		calls++
		return errors.New("boom")
	})

	assert.ErrorIs(t, err, retry.ErrExhausted)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestDo_CanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &fakeSleeper{}
	cause := errors.New("timeout")
	attempts, err := retry.Do(ctx, retry.Policy{Attempts: 3, Base: time.Second, Sleep: s.Sleep},
		func(ctx context.Context, attempt int) error { return cause })

	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, retry.ErrExhausted)
}

func TestSleep(t *testing.T) {
	require.NoError(t, retry.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, retry.Sleep(ctx, time.Hour), context.Canceled)
}
