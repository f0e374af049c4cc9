// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package raii

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"code.hybscloud.com/raii/thread"
)

// TryBuilder is the surface syntax for a protected region: a body,
// zero or more typed catch clauses, an optional catch-all, and an
// optional finally clause. Go has no macros, so the clause sequence is
// built fluently and executed by End.
type TryBuilder struct {
	body       func()
	catches    []catchClause
	catchAny   func(*Exception)
	finally    func()
	signalMode bool
	arena      arenaBinding
}

type catchClause struct {
	descriptor *Descriptor
	handler    func(*Exception)
}

// Try begins a protected region. The body runs immediately inside End;
// Try itself only records it.
func Try(body func()) *TryBuilder {
	return &TryBuilder{body: body}
}

// TrySignal begins a protected region that also installs the signal
// bridge for the duration of the body.
func TrySignal(body func()) *TryBuilder {
	return &TryBuilder{body: body, signalMode: true}
}

// Catch adds a clause matched by descriptor identity. Clauses are
// evaluated in the order added, first match wins.
func (b *TryBuilder) Catch(d *Descriptor, handler func(*Exception)) *TryBuilder {
	b.catches = append(b.catches, catchClause{descriptor: d, handler: handler})
	return b
}

// CatchAny adds the catch-all clause. It matches any currently raised
// exception once no more specific Catch matched.
func (b *TryBuilder) CatchAny(handler func(*Exception)) *TryBuilder {
	b.catchAny = handler
	return b
}

// Finally adds the unconditional clause, run last, regardless of
// whether anything matched. It does not clear the raised-exception
// state.
func (b *TryBuilder) Finally(fn func()) *TryBuilder {
	b.finally = fn
	return b
}

// WithArena binds a to this frame: a is released (arena.Clear) when
// the frame is popped. a must not be shared with any other frame.
func (b *TryBuilder) WithArena(a arenaBinding) *TryBuilder {
	b.arena = a
	return b
}

// End runs the body and drives the dispatch/drain/propagation protocol:
// push a frame, run the body, dispatch to a matching clause, run
// finally, drain finalizers, pop the frame, and propagate whatever
// exception (if any) remains unhandled.
func (b *TryBuilder) End() {
	t := currentThread()
	f := &Frame{state: frameTrying}
	if b.arena != nil {
		f.BindArena(b.arena)
	}
	t.pushFrame(f)

	var bodyPanic any
	var bodyRecovered bool
	if b.signalMode {
		bodyPanic, bodyRecovered = runBodyWithSignals(b.body)
	} else {
		bodyPanic, bodyRecovered = runBody(b.body)
	}

	var exc *Exception
	if bodyRecovered {
		if isFatal(bodyPanic) {
			f.drain()
			t.popFrame(f)
			panic(bodyPanic)
		}
		exc = classify(bodyPanic, b.signalMode)
		if exc == nil {
			// Not one of ours: drain for RAII's sake, then let the
			// original panic continue unwinding unchanged.
			f.drain()
			t.popFrame(f)
			panic(bodyPanic)
		}
		f.state = frameThrown
		t.setRaised(exc)
	}

	matched := false
	if exc != nil {
		for _, c := range b.catches {
			if exc.Is(c.descriptor) {
				matched = true
				f.state = frameHandled
				if p, ok := runGuarded(func() { c.handler(exc) }); ok {
					f.absorbPanic(p)
				}
				break
			}
		}
		if !matched && b.catchAny != nil {
			matched = true
			f.state = frameHandled
			if p, ok := runGuarded(func() { b.catchAny(exc) }); ok {
				f.absorbPanic(p)
			}
		}
	}

	if b.finally != nil {
		if p, ok := runGuarded(b.finally); ok {
			f.absorbPanic(p)
		}
	}

	f.state = frameFinalizing
	f.drain()
	f.state = frameDone
	t.popFrame(f)

	propagate := f.outer
	if propagate == nil && exc != nil && !matched {
		propagate = exc
	}
	if propagate == nil {
		if matched {
			t.setRaised(nil)
		}
		return
	}

	t.setRaised(propagate)
	if t.topFrame() == nil {
		terminateUncaught(propagate)
	}
	panic(&ravel{exception: propagate})
}

// runBody runs fn, recovering any panic without classifying it.
func runBody(fn func()) (panicValue any, recovered bool) {
	return runGuarded(fn)
}

// runBodyWithSignals runs fn as in runBody, but also races it against
// delivery of SIGINT/SIGTERM/SIGABRT. If one of those signals arrives
// before fn returns, fn's goroutine is abandoned (documented limitation
// — running a goroutine-per-body body means it cannot be forcibly
// interrupted the way an OS thread could be) and a
// synthetic exception for that signal is reported instead.
//
// Synchronous hardware faults (SIGSEGV/SIGFPE/SIGBUS/SIGILL) need no
// such race: the Go runtime already converts them into a panic on fn's
// own goroutine, caught by the inner runGuarded exactly like any other
// panic.
//
// The signal.Stop that restores the previous disposition is registered
// through Protect on the caller's already-pushed frame rather than run
// directly here, so undoing signal.Notify is a regular finalizer like
// any other resource release, not a special case in End's dispatch.
func runBodyWithSignals(fn func()) (panicValue any, recovered bool) {
	sigCh := make(chan os.Signal, 1)
	if !signalBridgeOK() {
		warnSignalBridgeUnavailable()
		return runBody(fn)
	}
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)
	Protect(func(ctx any) { signal.Stop(sigCh) }, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		panicValue, recovered = runBody(fn)
	}()

	select {
	case <-done:
		return panicValue, recovered
	case sig := <-sigCh:
		return &ravel{exception: signalException(sig)}, true
	}
}

var (
	signalWarnOnce thread.Once
	signalBridgeUp = true
)

// signalBridgeOK reports whether os/signal is usable in this process.
// Real Go programs always have it; the hook exists so a build that
// deliberately disables it (documented via DisableSignalBridge, used by
// tests that must not install a process-wide signal handler) degrades
// TrySignal to Try with a one-time warning.
func signalBridgeOK() bool {
	return signalBridgeUp
}

// DisableSignalBridge turns off OS-signal translation for the rest of
// the process. TrySignal regions still translate synchronous hardware
// faults; they just stop installing signal.Notify for SIGINT/SIGTERM/
// SIGABRT and degrade to plain Try for those three.
func DisableSignalBridge() { signalBridgeUp = false }

func warnSignalBridgeUnavailable() {
	signalWarnOnce.Do(func() {
		log.Warn().Msg("raii: signal bridge unavailable, TrySignal degraded to Try")
	})
}

func signalException(sig os.Signal) *Exception {
	d := SigTerm
	switch sig {
	case syscall.SIGINT:
		d = SigInt
	case syscall.SIGABRT:
		d = SigAbrt
	case syscall.SIGTERM:
		d = SigTerm
	}
	return &Exception{Descriptor: d}
}

// classify turns a recovered panic value into the Exception it
// represents, or nil if the panic is not one raii should handle — in
// which case the caller must let it keep propagating unchanged.
func classify(p any, signalMode bool) *Exception {
	if rv, ok := p.(*ravel); ok {
		return rv.exception
	}
	if signalMode {
		if d := classifyRuntimeFault(p); d != nil {
			return &Exception{Descriptor: d, Message: panicMessage(p)}
		}
	}
	return nil
}

// classifyRuntimeFault maps a recovered Go runtime panic to the signal
// descriptor it corresponds to. Go's runtime already
// turns the underlying hardware faults (nil-pointer dereference,
// integer divide by zero, out-of-bounds access) into a recoverable
// runtime.Error; this is the translation step, not a reimplementation
// of SA_SIGINFO-style fault delivery.
func classifyRuntimeFault(p any) *Descriptor {
	err, ok := p.(error)
	if !ok {
		return nil
	}
	if _, ok := p.(runtimeError); !ok {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "invalid memory address"), strings.Contains(msg, "nil pointer"):
		return SigSegv
	case strings.Contains(msg, "divide by zero"):
		return SigFpe
	case strings.Contains(msg, "index out of range"), strings.Contains(msg, "slice bounds out of range"), strings.Contains(msg, "out of bounds"):
		return SigBus
	default:
		return SigIll
	}
}

// runtimeError mirrors the runtime.Error interface without importing
// package runtime for just this assertion (runtime.Error is error plus
// the RuntimeError marker method, so this structural interface matches
// it exactly).
type runtimeError interface {
	error
	RuntimeError()
}
