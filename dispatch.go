// Copyright (c) 2025-present deep.rent GmbH (https://deep.rent)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Scheduler: one step of the executive's main loop (SPEC_FULL.md §4.3):
// fire due callbacks, select the next runnable thread by priority with
// an intra-level round robin, dispatch it.

package chronos

import (
	"github.com/deep-rent/chronos/klog"
)

// Step runs one scheduler pass. A hosted hal.Ticker-driven loop (see Run)
// calls Step repeatedly, the Go counterpart of kernel_run()'s
// for(;;) { scheduler(); }. It reports whether a thread was dispatched,
// which Run uses to back off instead of spinning when every thread is
// blocked — a concern the source's bare hardware loop never had.
func (k *Kernel) Step() bool {
	k.mu.Lock()
	k.dispatchCallbacks()

	t := k.selectThread()
	if t == nil {
		k.current = nil
		k.mu.Unlock()
		return false
	}
	k.current = t
	k.mu.Unlock()

	t.fiber.Resume()
	return true
}

// dispatchCallbacks is Phase A. Must be called with mu held; it releases
// mu around each invocation (matching the source's enable()/disable()
// bracketing of c(cb->param)) and re-acquires it before returning.
func (k *Kernel) dispatchCallbacks() {
	for {
		var due *Callback
		k.callbacks.Each(func(cb *Callback) {
			if due == nil && cb.timer == 0 {
				due = cb
			}
		})
		if due == nil {
			return
		}
		k.callbacks.Remove(due)
		fn, param := due.fn, due.param

		k.mu.Unlock()
		k.invokeCallback(fn, param)
		k.mu.Lock()
	}
}

// invokeCallback runs fn, recovering a panic (logged and dropped) so a
// misbehaving callback cannot take down the whole scheduler loop — the
// source has no equivalent concept, since a crashing C callback would
// simply crash the firmware, which no hosted executive should do.
func (k *Kernel) invokeCallback(fn CallbackFunc, param any) {
	defer func() {
		if r := recover(); r != nil {
			k.log.Error("callback panicked", klog.Component("scheduler"), "panic", r)
		}
	}()
	fn(param)
}

// selectThread is Phase B. Must be called with mu held.
func (k *Kernel) selectThread() *Thread {
	for i := k.maxPrio - 1; i >= 0; i-- {
		var chosen *Thread
		k.threads[i].Each(func(t *Thread) {
			if chosen != nil {
				return
			}
			if t.flags&flagNice != 0 {
				return
			}
			if t.flags&maskWait == 0 {
				chosen = t
			}
		})
		if chosen != nil {
			return chosen
		}
		// No ready, non-nice thread at this level: a new round begins.
		k.threads[i].Each(func(t *Thread) {
			t.flags &^= flagNice
		})
	}
	return nil
}
