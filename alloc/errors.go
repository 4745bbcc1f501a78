package alloc

import "errors"

var (
	// ErrExhausted is returned when an allocator reached its configured limit.
	ErrExhausted = errors.New("alloc: limit exhausted")

	// ErrTooLarge is returned when a layout cannot fit into a single chunk.
	ErrTooLarge = errors.New("alloc: block larger than chunk")

	// ErrReleased is returned by an arena after Release.
	ErrReleased = errors.New("alloc: arena released")

	// ErrInjected is the failure produced by Tracking.FailAfter.
	ErrInjected = errors.New("alloc: injected failure")
)
