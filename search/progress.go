package search

import "sync/atomic"

// ProgressSink is an explicit capability passed at construction: coarse
// percent-complete status is reported as data, not a cross-cutting observer
// notification.
type ProgressSink interface {
	Report(percent int, message string, nestedIDs []string)
}

// NopProgressSink discards all progress reports; it is the default when
// Opts.Progress is nil.
type NopProgressSink struct{}

func (NopProgressSink) Report(int, string, []string) {}

// CancelToken is a cooperative cancellation flag: checked at the top of the
// per-protein loop, never at a suspension point (there are none — the core
// is CPU-bound).
type CancelToken struct {
	stopped int32
}

// Stop requests cancellation. Safe to call from any goroutine.
func (c *CancelToken) Stop() { atomic.StoreInt32(&c.stopped, 1) }

// Stopped reports whether Stop has been called.
func (c *CancelToken) Stopped() bool { return atomic.LoadInt32(&c.stopped) != 0 }
