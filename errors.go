package sensorhub

import "errors"

var (
	// ErrInvalidHandle flags an out-of-range logical type or a closed channel.
	ErrInvalidHandle = errors.New("invalid sensor handle")
	// ErrDeviceUnavailable flags a physical device that could not be opened.
	ErrDeviceUnavailable = errors.New("physical device unavailable")
	// ErrCommandRejected flags a device that refused a power or interval command.
	ErrCommandRejected = errors.New("device command rejected")
	// ErrNoPendingData flags the defensive case of an empty pending set scan;
	// callers should retry after the built-in backoff.
	ErrNoPendingData = errors.New("no pending sensor data")
	// ErrSourceExhausted flags a logical channel whose stream ended; the
	// channel is no longer usable.
	ErrSourceExhausted = errors.New("event source exhausted")
	// ErrStopped is the stop sentinel: the consumer must stop polling.
	// It is a directive, not a failure.
	ErrStopped = errors.New("polling stopped")
)
