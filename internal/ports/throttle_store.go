package ports

import "context"

// ThrottleStore enforces a minimum interval between accepted requests per
// client. It is a courtesy limiter for upstream usage policies, not a
// security control; minor races between near-simultaneous requests are
// tolerable.
type ThrottleStore interface {
	// Allow reports whether clientID may make a request now, recording the
	// call time when it may. A storage error counts as allowed so that a
	// broken limiter never blocks the proxy.
	Allow(ctx context.Context, clientID string) (bool, error)
}
