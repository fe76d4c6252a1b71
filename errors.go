// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import (
	"errors"
	"fmt"
	"log"
)

// ErrorCode classifies the error taxonomy of spec.md §7.
type ErrorCode int

const (
	// ErrNone means no error has occurred.
	ErrNone ErrorCode = iota
	// ErrMemoryOut is returned when the arena, a subtable, or the cache
	// cannot be resized or reclaimed to satisfy an allocation.
	ErrMemoryOut
	// ErrInternal is returned when a debug invariant check fails; it
	// indicates a library bug and is not recoverable.
	ErrInternal
)

// sentinel errors, grounded on the teacher's kernel.go errMemory.
var (
	errMemory = errors.New("unable to free memory or resize the node arena")

	errInternalLowCompl      = errors.New("checkBkfddVar: node has a complemented low edge")
	errInternalDavioHighZero = errors.New("checkBkfddVar: Davio node has a false high edge")
)

// Error returns the error status of the manager, or an empty string if none.
func (m *Manager) Error() string {
	if m.err == nil {
		return ""
	}
	return m.err.Error()
}

// Errored returns true if a call on m has previously failed.
func (m *Manager) Errored() bool { return m.err != nil }

// LastErrorCode returns the taxonomy classification of the most recent error.
func (m *Manager) LastErrorCode() ErrorCode { return m.errorCode }

// seterror records an error of the given code, chaining it with any earlier
// unresolved error exactly as the teacher's seterror does in errors.go, and
// returns the null edge so call sites can `return m.seterror(...)`.
func (m *Manager) seterror(code ErrorCode, format string, a ...interface{}) edge {
	m.errorCode = code
	if m.err != nil {
		format = format + "; " + m.Error()
	}
	m.err = fmt.Errorf(format, a...)
	if _DEBUG {
		log.Println(m.err)
	}
	return edge(-1) // no valid node maps to this edge; callers must check Errored()
}
