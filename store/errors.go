package store

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/cyberguard/console/remote"
)

var (
	// ErrNotFound is returned when no record matches a key
	ErrNotFound = errors.New("record not found")
	// ErrReadOnly is returned when a local-only mutation targets a remote-origin record
	ErrReadOnly = errors.New("remote records cannot be changed from the console")
	// ErrNotSynced is the cause of a remote mutation on a local record the backend never accepted
	ErrNotSynced = errors.New("record has not been accepted by the backend yet")
	// ErrNoScheduler is returned by StartPolling when the store was built without a Scheduler
	ErrNoScheduler = errors.New("no scheduler configured")
)

// NetworkError is a transport failure, or any failed read other than a 401
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthRequiredError is returned when the backend answered 401
type AuthRequiredError struct {
	Op  string
	Err error
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("%s: authentication required", e.Op)
}

func (e *AuthRequiredError) Unwrap() error { return e.Err }

// RemoteSubmitError is returned when a submission was kept locally but the backend did not accept it
type RemoteSubmitError struct {
	Op  string
	Err error
}

func (e *RemoteSubmitError) Error() string {
	return fmt.Sprintf("%s: saved locally, backend rejected it: %v", e.Op, e.Err)
}

func (e *RemoteSubmitError) Unwrap() error { return e.Err }

// RemoteMutationError is returned when a privileged write failed remotely. Local state is unchanged.
type RemoteMutationError struct {
	Op  string
	Err error
}

func (e *RemoteMutationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteMutationError) Unwrap() error { return e.Err }

// ForbiddenError is returned when the role check failed. Nothing was sent or changed.
type ForbiddenError struct {
	Op string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: admin role required", e.Op)
}

// FieldError is used to indicate an error with a specific input field
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError is returned when input fails its constraints
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// readError classifies a failed read: 401 needs a token, anything else is a network problem
func readError(op string, err error) error {
	var se *remote.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized {
		return &AuthRequiredError{Op: op, Err: err}
	}
	return &NetworkError{Op: op, Err: err}
}

// writeError is like readError but keeps non-2xx answers as the StatusError the client returned
func writeError(op string, err error) error {
	var se *remote.StatusError
	if errors.As(err, &se) {
		if se.StatusCode == http.StatusUnauthorized {
			return &AuthRequiredError{Op: op, Err: err}
		}
		return err
	}
	return &NetworkError{Op: op, Err: err}
}
