// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package thread

import "sync"

// TSS is thread-specific storage keyed by goroutine, standing in for
// tss_t. A destructor registered with NewTSS runs on the calling
// goroutine's value when that goroutine calls Delete; values stored by
// other goroutines are left untouched. tinycthread instead runs it
// automatically on thread exit, a hook Go does not expose, so each
// goroutine must call Delete explicitly once its value is no longer
// needed (see
// raii.ReleaseThread, which has the same limitation for the same
// reason).
type TSS struct {
	mu     sync.Mutex
	values map[int64]any
	dtor   func(any)
}

// NewTSS creates a thread-specific storage key. dtor may be nil.
// Equivalent to tss_create.
func NewTSS(dtor func(any)) *TSS {
	return &TSS{values: make(map[int64]any), dtor: dtor}
}

// Get returns the calling goroutine's value, or nil if Set was never
// called on this goroutine. Equivalent to tss_get.
func (t *TSS) Get() any {
	id := currentGoroutineID()
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.values[id]
}

// Set stores val for the calling goroutine. Equivalent to tss_set.
func (t *TSS) Set(val any) Result {
	id := currentGoroutineID()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values[id] = val
	return Success
}

// Delete drops the calling goroutine's value, running the destructor
// on it first if one was registered and a value was present.
func (t *TSS) Delete() {
	id := currentGoroutineID()
	t.mu.Lock()
	val, ok := t.values[id]
	delete(t.values, id)
	t.mu.Unlock()
	if ok && t.dtor != nil {
		t.dtor(val)
	}
}
