package remote

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record the caller probed for does not
// exist remotely. Probing for absent records is a normal part of
// reconciliation, so callers check this with errors.Is before treating a
// remote failure as fatal:
//
//	if errors.Is(err, remote.ErrNotFound) {
//	    // record is gone; not a transport failure
//	}
var ErrNotFound = errors.New("remote record not found")

// TransportError reports a non-2xx response other than 404, or a failure
// to reach the remote system at all. It is fatal for the enclosing
// operation.
type TransportError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote request %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("remote request %s failed: status %d: %s", e.URL, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
