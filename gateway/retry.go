package gateway

import (
	"context"
	"time"
)

const (
	maxReadRetries = 2
	retryBaseDelay = 200 * time.Millisecond
)

// retryTransient runs fn and retries it up to maxReadRetries extra times
// with exponential backoff (base << attempt), but only when the failure is
// classified transient. NotFound, validation and internal errors propagate
// immediately. Used for idempotent reads only; writes go through once.
func retryTransient(ctx context.Context, sleep func(time.Duration), fn func(context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn(ctx)
		if err == nil || KindOf(err) != KindTransient || attempt >= maxReadRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return classify("retry wait", ctx.Err())
		default:
		}
		sleep(retryBaseDelay << attempt)
	}
}
