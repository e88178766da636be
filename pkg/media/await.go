package media

import (
	"context"
	"time"

	"github.com/matzehuels/flowgrid/pkg/flow"
)

// DefaultPollInterval is the granularity at which readiness polling
// re-checks an element's intrinsic dimensions.
const DefaultPollInterval = 50 * time.Millisecond

// AwaitIntrinsicSize watches el until both intrinsic dimensions are
// non-zero, then invokes fn exactly once and stops. This is the
// one-shot readiness notification for streaming sources whose metadata
// arrives after construction.
//
// The element is checked immediately, then re-polled at the given
// interval (DefaultPollInterval if non-positive). Cancelling ctx stops
// polling without invoking fn. The watch runs on its own goroutine;
// AwaitIntrinsicSize returns immediately.
func AwaitIntrinsicSize(ctx context.Context, el flow.Element, interval time.Duration, fn func()) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if el.IntrinsicWidth() > 0 && el.IntrinsicHeight() > 0 {
				fn()
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// WaitReady blocks until every element reports non-zero intrinsic
// dimensions or ctx is done. It is the bridge between asynchronous
// metadata arrival and layout computation, which must only see ready
// elements.
func WaitReady(ctx context.Context, elements []flow.Element, interval time.Duration) error {
	ready := make(chan struct{}, len(elements))
	for _, el := range elements {
		AwaitIntrinsicSize(ctx, el, interval, func() { ready <- struct{}{} })
	}
	for range elements {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}
	}
	return nil
}
