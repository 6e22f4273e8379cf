package api

import (
	"errors"
	"fmt"
)

// ErrMissingCredential marks an operation attempted without a bearer token.
// Reads treat this as a normal state and short-circuit to empty results;
// only writes surface it to the caller.
var ErrMissingCredential = errors.New("missing credential")

// ErrNetwork wraps transport-level failures reaching the upstream API.
var ErrNetwork = errors.New("network error")

// ServerRejectedError carries the upstream's structured rejection of a
// submission. The message is surfaced to the user verbatim.
type ServerRejectedError struct {
	StatusCode int
	Message    string
}

func (e *ServerRejectedError) Error() string {
	return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, e.Message)
}
