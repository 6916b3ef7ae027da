// ============================================================================
// boundary - Fehlergrenzen fuer mDW-Oberflaechen
// ============================================================================
//
// Package:     guard
// Description: Fault value captured when a guarded view panics
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package guard

import (
	"errors"
	"fmt"
	"time"

	bderror "github.com/msto63/boundary/foundation/core/error"
)

// Fault is a render fault: a panic raised while a guarded subtree rendered.
type Fault struct {
	// ID correlates the local log line, the journal row and the remote report
	ID string

	// Boundary is the name of the Guard that intercepted the panic
	Boundary string

	// Err is the recovered value. Non-error panic values are wrapped.
	Err error

	// Stack is the goroutine stack at the recovery site
	Stack []byte

	OccurredAt time.Time

	// Attempt counts the transitions into Faulted for this Guard, from 1
	Attempt int
}

// Error implements the error interface
func (f *Fault) Error() string {
	return fmt.Sprintf("render fault in %s: %v", f.Boundary, f.Err)
}

// Unwrap exposes the recovered error to errors.Is / errors.As
func (f *Fault) Unwrap() error {
	return f.Err
}

// Message returns the message of the recovered error
func (f *Fault) Message() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// AsError returns the fault as a structured error tagged CodeRenderFault
func (f *Fault) AsError() *bderror.Error {
	return bderror.Wrap(f, "render fault").
		WithCode(bderror.CodeRenderFault).
		WithOperation("view").
		WithDetail("boundary", f.Boundary).
		WithDetail("fault_id", f.ID).
		WithDetail("attempt", f.Attempt)
}

// recoveredError turns a recovered panic value into an error
func recoveredError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		return fmt.Errorf("%v", v)
	}
}
