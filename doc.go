// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package raii provides structured exceptions and RAII-style scoped
// cleanup for Go, which otherwise has no native exception unwinding.
//
// # Design Philosophy
//
// raii builds try/catch/finally semantics on top of Go's own panic and
// recover, rather than reimplementing setjmp/longjmp-style context
// capture. A protected region is a [Try] or [TrySignal] builder; clauses
// are added with [*TryBuilder.Catch], [*TryBuilder.CatchAny], and
// [*TryBuilder.Finally]; [*TryBuilder.End] runs the body and drives the
// dispatch, drain, and propagation protocol.
//
// # Exceptions
//
// An exception's identity is a [*Descriptor] — a package-level value
// compared by pointer, exactly like a C enum constant's address.
// [NewDescriptor] declares one; [Throw], [ThrowMessage], and [Rethrow]
// raise and propagate an [*Exception] built around a descriptor.
//
// # Protected cleanup
//
// [Protect] registers a finalizer with the innermost active [Try] region;
// finalizers run LIFO on every exit path — normal, thrown, or
// double-thrown — exactly once. [Unprotect] detaches a finalizer before
// it runs. [DeferThread] is sugar over [Protect] for callers that don't
// need the handle.
//
// # Signals
//
// [TrySignal] converts synchronous hardware faults (already surfaced by
// the Go runtime as recoverable panics) and a fixed set of OS signals
// into catchable [*Exception] values scoped to the region; outside a
// [TrySignal] region, those signals keep their default disposition.
//
// # Arenas
//
// Package [code.hybscloud.com/raii/arena] provides the scoped bump
// allocator whose lifetime a [Try] frame can own via [*TryBuilder.WithArena].
//
// # Thread shim
//
// Package [code.hybscloud.com/raii/thread] provides the portable
// thread/mutex/condition-variable/TLS primitives this package's
// per-thread state rests on.
package raii
