package llm

import (
	"errors"
	"fmt"
)

// ErrUnparsable marks a reply that was received but could not be decoded
// into the shape a stage expected. Stages recover from it with their local
// fallbacks; the audit stage treats it as a failed audit.
var ErrUnparsable = errors.New("unparsable response")

// ServiceError is returned by the Invoker once every retry attempt against
// a vendor has failed.
type ServiceError struct {
	Vendor   string
	Attempts int
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("vendor %s failed after %d attempts: %v", e.Vendor, e.Attempts, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
