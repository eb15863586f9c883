package rill

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is the panic value for touching a device that is not bound.
	ErrClosed = errors.New("device is not open")
	// ErrOverrun is wrapped by the panic value for a device that reports
	// more characters than it was asked for.
	ErrOverrun = errors.New("device overran the request")
)

// OverrunError describes a device that broke its count contract.
type OverrunError struct {
	Op        string
	Requested int
	Reported  int
}

func (e *OverrunError) Error() string {
	return fmt.Sprintf("%s reported %d characters for a request of %d", e.Op, e.Reported, e.Requested)
}

func (e *OverrunError) Unwrap() error { return ErrOverrun }

func checkCount(op string, reported, requested int) int {
	if reported < 0 || reported > requested {
		panic(&OverrunError{Op: op, Requested: requested, Reported: reported})
	}
	return reported
}
