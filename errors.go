package escorex

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoNodeAvailable is returned when a dispatch cannot be completed
	// because no node could serve it, either because the pool is exhausted
	// or because every attempt within the retry budget failed.
	ErrNoNodeAvailable = errors.New("no node available")

	// ErrPoolExhausted is returned by a NodePool when it has no further
	// node to yield.
	ErrPoolExhausted = errors.New("node pool exhausted")
)

var ErrInvalidArgument = errors.New("invalid argument")

type invalidArgumentError struct {
	Message string
}

func (e invalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

func (e invalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// NetworkError marks a failure as a connectivity problem with the node
// that served the attempt. Only this class of failure is retried with
// failover; any other error from an HTTPClient propagates unchanged.
type NetworkError struct {
	Cause   error
	Request *http.Request
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %s", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// NoNodeAvailableError is the terminal condition of a dispatch: either
// the pool ran dry, or every node within the retry budget failed with a
// network error.
type NoNodeAvailableError struct {
	Retries    int
	MaxRetries int
	Cause      error
}

func (e *NoNodeAvailableError) Error() string {
	if errors.Is(e.Cause, ErrPoolExhausted) {
		return fmt.Sprintf("no node available (retry %d of max %d): %s",
			e.Retries, e.MaxRetries, e.Cause)
	}

	return fmt.Sprintf("no node available, exceeded maximum number of retries (%d)", e.MaxRetries)
}

func (e *NoNodeAvailableError) Unwrap() error {
	return ErrNoNodeAvailable
}
