package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryDoSucceedsFirstAttempt(t *testing.T) {
	r := Retry{Attempts: 3, Backoff: time.Millisecond, sleep: func(time.Duration) {
		t.Fatal("must not sleep when the first attempt succeeds")
	}}
	calls := 0
	err := r.Do(func(attempt int) error {
		calls++
		assert.Equal(t, calls, attempt)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryDoRetriesThenSucceeds(t *testing.T) {
	var slept []time.Duration
	r := Retry{Attempts: 3, Backoff: 50 * time.Millisecond, sleep: func(d time.Duration) {
		slept = append(slept, d)
	}}
	calls := 0
	err := r.Do(func(int) error {
		calls++
		if calls < 3 {
			return ErrRetryAgain
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	// Linear backoff: attempt*Backoff.
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 100 * time.Millisecond}, slept)
}

func TestRetryDoExhausts(t *testing.T) {
	r := Retry{Attempts: 3, sleep: func(time.Duration) {}}
	calls := 0
	err := r.Do(func(int) error {
		calls++
		return ErrRetryAgain
	})
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 3, calls)
}

func TestRetryDoStopsOnOtherError(t *testing.T) {
	boom := errors.New("boom")
	r := Retry{Attempts: 3, sleep: func(time.Duration) {}}
	calls := 0
	err := r.Do(func(int) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
