package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// DoWithRetry runs fn up to attempts times, waiting interval between tries.
// It stops early on success, on a Permanent error, or when ctx is done.
func DoWithRetry(ctx context.Context, log *logrus.Logger, attempts int, interval time.Duration, fn func() error) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		var perm permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if log != nil {
			log.WithError(err).Warnf("[RETRY] attempt %d/%d failed", i, attempts)
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry aborted after %d attempts: %w", i, ctx.Err())
		case <-time.After(interval):
		}
	}
	return err
}
