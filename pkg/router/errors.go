package router

import "errors"

var (
	// ErrClosed is returned by Acquire after the router has been shut down.
	ErrClosed = errors.New("router is closed")

	// ErrEvictionTimedOut is returned when outstanding leases did not drain
	// within the eviction grace period. The handle is torn down regardless.
	ErrEvictionTimedOut = errors.New("eviction grace period expired with leases outstanding")
)
