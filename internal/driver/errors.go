package driver

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned by commands issued before DriverReady.
	ErrNotInitialized = errors.New("driver not initialized")
	// ErrUnknownNode is returned for a node id the network does not have.
	ErrUnknownNode = errors.New("unknown node")
	// ErrNotSupported is returned when a node lacks the needed command class.
	ErrNotSupported = errors.New("not supported by node")
	// ErrClosed is returned after Stop.
	ErrClosed = errors.New("driver closed")
)

// Error describes a failed driver operation.
type Error struct {
	Op     string // Operation, e.g. "refresh" or "set_level"
	NodeID int    // Target node, 0 for network-wide operations
	Err    error  // Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.NodeID != 0 {
		return fmt.Sprintf("%s node %d: %v", e.Op, e.NodeID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, id int, err error) error {
	return &Error{Op: op, NodeID: id, Err: err}
}
