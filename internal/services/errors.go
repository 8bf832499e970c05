package services

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindow rejects a window whose end date precedes its start
	// date. Raised before any calculator runs.
	ErrInvalidWindow = errors.New("invalid window")

	// ErrDataSourceUnavailable marks a record stream that could not be
	// reached. It fails only the calculator that needed the stream.
	ErrDataSourceUnavailable = errors.New("data source unavailable")

	// ErrDataSourceTimeout marks a sub-query that exceeded its deadline.
	ErrDataSourceTimeout = errors.New("data source timeout")
)

// classifyStoreErr maps a repository error to the calculator error taxonomy,
// keeping the stream name and the driver error in the chain.
func classifyStoreErr(stream string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %v: %w", stream, err, ErrDataSourceTimeout)
	}
	return fmt.Errorf("%s: %v: %w", stream, err, ErrDataSourceUnavailable)
}
