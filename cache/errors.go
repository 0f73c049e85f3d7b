package cache

import "errors"

var (
	// ErrInvalidCapacity is returned when a cache is built with capacity <= 0.
	ErrInvalidCapacity = errors.New("cache: capacity must be > 0")

	// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
	ErrNoLoader = errors.New("cache: no Loader provided")

	// ErrClosed is returned by GetOrLoad after Close.
	ErrClosed = errors.New("cache: closed")
)
