package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const readAttempts = 3

// retryRead retries an idempotent read a bounded number of times with a short
// backoff. Writes must never go through here — a retried write that already
// committed would duplicate approval entries.
func retryRead(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		err = fn()
		if err == nil || !transient(err) {
			return err
		}
		if attempt == readAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return err
}

// transient reports whether a read is worth retrying. Record-not-found and
// context cancellation are definitive answers, not outages.
func transient(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
