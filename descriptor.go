// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package raii

// Descriptor is the static identity of a named exception. Two descriptors
// match if and only if they are the same pointer — declare one per
// exception kind as a package-level value and never copy it by value.
type Descriptor struct {
	// Name is the stable, human-readable name used in diagnostics.
	Name string

	// DefaultMessage is used by Throw when no explicit message is given.
	DefaultMessage string
}

// NewDescriptor declares a new exception descriptor. The returned
// pointer's address is the descriptor's identity, so callers should
// store it in a package-level var rather than constructing one ad hoc.
func NewDescriptor(name string, defaultMessage string) *Descriptor {
	return &Descriptor{Name: name, DefaultMessage: defaultMessage}
}

// Built-in descriptors raised by the runtime itself, not by user code,
// so they live here rather than in a caller's package.
var (
	OutOfMemory      = NewDescriptor("out_of_memory", "allocation failed")
	InvalidArgument  = NewDescriptor("invalid_argument", "invalid argument")
	AssertionFailure = NewDescriptor("assertion_failure", "assertion failed")
)

// Signal-derived descriptors, one per signal the bridge installs.
var (
	SigSegv = NewDescriptor("sig_segv", "segmentation fault")
	SigFpe  = NewDescriptor("sig_fpe", "floating point exception")
	SigBus  = NewDescriptor("sig_bus", "bus error")
	SigIll  = NewDescriptor("sig_ill", "illegal instruction")
	SigAbrt = NewDescriptor("sig_abrt", "aborted")
	SigInt  = NewDescriptor("sig_int", "interrupt")
	SigTerm = NewDescriptor("sig_term", "terminated")
)
