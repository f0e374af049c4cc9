// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package raii

import "fmt"

// Exception is a live description of the exception currently
// propagating on a thread. It is composed at the throw site and lives
// until the matching Catch returns, or until Rethrow extends its
// lifetime into an enclosing frame.
type Exception struct {
	// Descriptor is the exception's static identity. Matching compares
	// this field by pointer, never by Name.
	Descriptor *Descriptor

	// File and Line record the throw site.
	File string
	Line int

	// Message is the dynamic message, if any; falls back to
	// Descriptor.DefaultMessage when empty.
	Message string

	// Data is an opaque payload the thrower may attach; raii never
	// inspects it.
	Data any
}

// Error implements the error interface so *Exception can flow through
// ordinary Go error-handling code outside a Try region (e.g. a finalizer
// that wants to log what it is cleaning up after).
func (e *Exception) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Descriptor.DefaultMessage
	}
	if msg == "" {
		return fmt.Sprintf("%s at %s:%d", e.Descriptor.Name, e.File, e.Line)
	}
	return fmt.Sprintf("%s at %s:%d: %s", e.Descriptor.Name, e.File, e.Line, msg)
}

// Is reports whether e was raised from the given descriptor. Matching is
// always identity (pointer) comparison.
func (e *Exception) Is(d *Descriptor) bool {
	return e != nil && e.Descriptor == d
}
