// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package raii

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
)

// ravel is the panic payload raii uses to carry a structured exception
// through Go's own unwinder. Recovering one and finding a *ravel is how
// a Try/TrySignal dispatcher tells "one of ours" apart from an arbitrary
// Go panic.
type ravel struct {
	exception *Exception
}

// fatalError marks a programmer-error panic — a contract violation,
// not a recoverable exception. Unlike *ravel, a fatalError is never
// absorbed by a Catch/CatchAny/Finally/drain — it is always
// re-panicked unchanged so the process terminates for real.
type fatalError struct{ msg string }

func (e fatalError) Error() string { return e.msg }

func fatal(msg string) {
	panic(fatalError{msg})
}

func isFatal(p any) bool {
	_, ok := p.(fatalError)
	return ok
}

// Throw raises a new exception with the descriptor's default message.
func Throw(d *Descriptor) {
	throwAt(1, d, "", nil)
}

// ThrowMessage raises a new exception carrying an explicit message.
func ThrowMessage(d *Descriptor, message string) {
	throwAt(1, d, message, nil)
}

// ThrowData is like ThrowMessage but also attaches an opaque data
// value the catch handler can inspect.
func ThrowData(d *Descriptor, message string, data any) {
	throwAt(1, d, message, data)
}

func throwAt(skip int, d *Descriptor, message string, data any) {
	_, file, line, _ := runtime.Caller(skip + 1)
	e := &Exception{Descriptor: d, File: file, Line: line, Message: message, Data: data}
	raise(e)
}

// raise composes and stores the raised record, then either resumes
// the nearest frame (by panicking into its recover) or terminates the
// process if there is no active frame at all.
func raise(e *Exception) {
	t := currentThread()
	t.setRaised(e)
	if t.topFrame() == nil {
		terminateUncaught(e)
	}
	panic(&ravel{exception: e})
}

// Rethrow re-emits the current thread's raised record into the
// enclosing frame. Valid only while a raised record exists and the
// calling frame has a parent; both violations are fatal.
func Rethrow() {
	t := currentThread()
	e := t.getRaised()
	if e == nil {
		fatal("raii: Rethrow called with no active exception")
	}
	f := t.topFrame()
	if f == nil || f.parent == nil {
		fatal("raii: Rethrow called with no enclosing frame")
	}
	panic(&ravel{exception: e})
}

// runGuarded runs fn, recovering any panic. fatalError panics are
// re-panicked immediately — they must never be absorbed by a Catch,
// CatchAny, Finally, or finalizer drain.
func runGuarded(fn func()) (panicValue any, recovered bool) {
	defer func() {
		if p := recover(); p != nil {
			if isFatal(p) {
				panic(p)
			}
			panicValue = p
			recovered = true
		}
	}()
	fn()
	return nil, false
}

// terminateUncaught handles an exception that escapes the outermost
// frame: it writes a diagnostic line to stderr and terminates the
// process with a non-zero status.
func terminateUncaught(e *Exception) {
	msg := e.Message
	if msg == "" {
		msg = e.Descriptor.DefaultMessage
	}
	fmt.Fprintf(os.Stderr, "Uncaught %s at %s:%d: %s\n", e.Descriptor.Name, e.File, e.Line, msg)
	os.Exit(1)
}

// reportLostException logs a superseded outer-exception record: when a
// second exception raised during cleanup overwrites the first, the
// first is logged as lost rather than silently dropped.
func reportLostException(e *Exception) {
	log.Warn().
		Str("descriptor", e.Descriptor.Name).
		Str("file", e.File).
		Int("line", e.Line).
		Msg("raii: exception lost during cleanup")
}

// panicMessage renders an arbitrary recovered panic value for inclusion
// in a synthesized Exception's Message field.
func panicMessage(p any) string {
	if err, ok := p.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", p)
}
