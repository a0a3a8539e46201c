package booking

import (
	"errors"
	"time"
)

// ErrRetryAgain is returned by an attempt function to request another
// try.  Any other error aborts the loop immediately.
var ErrRetryAgain = errors.New("booking: retry")

// ErrRetriesExhausted is returned by Retry.Do when every attempt asked
// to retry.  Callers map it to a recoverable Conflict, never a crash.
var ErrRetriesExhausted = errors.New("booking: retries exhausted")

// Retry executes an optimistic storage attempt a bounded number of
// times with a linearly increasing delay between attempts.  It exists
// as its own type so the bound and backoff policy are testable in
// isolation from the creation protocol that uses them.
type Retry struct {
	Attempts int
	Backoff  time.Duration

	// sleep is swapped out in tests; nil means time.Sleep.
	sleep func(time.Duration)
}

// Do invokes fn up to r.Attempts times.  fn receives the 1-based
// attempt number.  A nil return stops the loop as success; ErrRetryAgain
// schedules another attempt after attempt*Backoff; any other error is
// returned unchanged.
func (r Retry) Do(fn func(attempt int) error) error {
	sleep := r.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for attempt := 1; attempt <= r.Attempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRetryAgain) {
			return err
		}
		if attempt < r.Attempts && r.Backoff > 0 {
			sleep(time.Duration(attempt) * r.Backoff)
		}
	}
	return ErrRetriesExhausted
}
