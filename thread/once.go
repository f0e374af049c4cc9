// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package thread

import "sync"

// Once wraps sync.Once under the call_once(once_flag*, void(*)(void))
// name, kept as its own type so callers migrating from the tinycthread
// shape don't have to learn two names for the same primitive.
type Once struct {
	once sync.Once
}

// Do runs fn exactly once across all calls to this Once, regardless of
// which goroutine calls it first. Equivalent to call_once.
func (o *Once) Do(fn func()) {
	o.once.Do(fn)
}
