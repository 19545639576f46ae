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

// Support API: thread lifecycle control from outside the thread itself,
// signalling, forced release, mutex unlock, and the deferred-callback
// facility (SPEC_FULL.md §4.5). Every operation here brackets its
// mutation with k.mu, the Go rendering of the source's disable()/enable().

package chronos

import (
	"reflect"

	"github.com/deep-rent/chronos/uuid"
)

// sameFunc compares two CallbackFuncs by code pointer, the closest Go
// analogue of the source's raw function-pointer equality (p->function ==
// fn). Like the source, it identifies a callback by which function
// literal it was created from, not by closed-over state — two distinct
// closures over the same func literal compare equal, matching C's
// function-pointer semantics exactly; two different literals never do.
func sameFunc(a, b CallbackFunc) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// Signal releases every thread waiting on id. If a released thread has
// no pending sleep timer of its own (time_pending clear), its timer is
// zeroed so the scheduler finds it immediately ready.
func (k *Kernel) Signal(id SignalID) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i := 0; i < k.maxPrio; i++ {
		k.threads[i].Each(func(t *Thread) {
			if t.flags&flagWaiting != 0 && t.data == id {
				t.flags &^= flagWaiting
				if t.flags&flagTimePending == 0 {
					t.timer = 0
				}
			}
		})
	}
}

// Force releases a specific thread from a wait without signalling it:
// its next KernelCall return is false, as if it had timed out. Force is
// a no-op if the thread is not currently waiting.
func (k *Kernel) Force(t *Thread) {
	if t == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if t.flags&flagWaiting != 0 {
		t.flags &^= flagWaiting
		t.flags |= flagTimeout
		if t.flags&flagTimePending == 0 {
			t.timer = 0
		}
	}
}

// Unlock releases m. If a thread is blocked on m (semaphore set, data ==
// m), ownership transfers directly to the highest-priority such waiter —
// m stays MutexLocked and that thread's semaphore bit clears. Only when
// no waiter is found is m actually freed. Unlock on an already-free mutex
// is a no-op.
func (k *Kernel) Unlock(m *Mutex) {
	if m == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if *m == MutexFree {
		return
	}
	for i := k.maxPrio - 1; i >= 0; i-- {
		var winner *Thread
		k.threads[i].Each(func(t *Thread) {
			if winner != nil {
				return
			}
			if t.flags&flagSemaphore != 0 && t.data == m {
				winner = t
			}
		})
		if winner != nil {
			winner.flags &^= flagSemaphore
			if winner.flags&flagTimePending == 0 {
				winner.timer = 0
			}
			return
		}
	}
	*m = MutexFree
}

// Terminate asks t to finish cooperatively: its wait mask is cleared and
// terminate (with timeout) is set atomically, so that if t is currently
// blocked it is released, and once dispatched it observes Terminated()
// true via NotTerminated. Terminate does not forcibly unwind t — it is a
// cooperative cancel (see SPEC_FULL.md §5).
func (k *Kernel) Terminate(t *Thread) {
	if t == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	t.flags = (t.flags &^ maskWait) | maskTerminate
}

// Suspend pauses t: it will not be selected by the scheduler until
// Release is called, regardless of priority or readiness.
func (k *Kernel) Suspend(t *Thread) {
	if t == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	t.flags |= flagSuspend
}

// Release reverses a prior Suspend, returning t to its previous
// readiness class.
func (k *Kernel) Release(t *Thread) {
	if t == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	t.flags &^= flagSuspend
}

// Terminated reports whether the calling thread has a pending
// termination request. Called outside a thread, it reports false (the
// source's thread_terminated returns FALSE when _thrp is NULL).
func (k *Kernel) Terminated() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.current == nil {
		return false
	}
	return k.current.flags&flagTerminate != 0
}

// NotTerminated is the complement of Terminated, convenient as a thread
// body's loop condition: for k.NotTerminated() { ... }. Called outside a
// thread, it reports true (the source's thread_not_terminated default).
func (k *Kernel) NotTerminated() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.current == nil {
		return true
	}
	return k.current.flags&flagTerminate == 0
}

// Fire schedules fn to run after delay ticks, with param passed through
// unchanged. A delay of 0 means the callback is eligible on the very next
// scheduler pass's callback-dispatch phase.
func (k *Kernel) Fire(fn CallbackFunc, param any, delay uint32) {
	if fn == nil {
		return
	}
	cb := &Callback{id: uuid.New(), fn: fn, param: param, timer: delay}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.callbacks.Add(cb)
}

// Refire updates the delay and parameter of a pending callback for fn,
// or schedules a new one if none exists — calling Refire twice for the
// same fn is equivalent to calling it once with the arguments of the
// second call.
func (k *Kernel) Refire(fn CallbackFunc, param any, delay uint32) {
	if fn == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	found := false
	k.callbacks.Each(func(cb *Callback) {
		if found {
			return
		}
		if sameFunc(cb.fn, fn) {
			cb.param = param
			cb.timer = delay
			found = true
		}
	})
	if found {
		return
	}
	k.callbacks.Add(&Callback{id: uuid.New(), fn: fn, param: param, timer: delay})
}

// Cancel removes every pending callback registered for fn. Cancel is
// idempotent: cancelling a function with no pending callback is a no-op.
func (k *Kernel) Cancel(fn CallbackFunc) {
	if fn == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	for {
		var match *Callback
		k.callbacks.Each(func(cb *Callback) {
			if match == nil && sameFunc(cb.fn, fn) {
				match = cb
			}
		})
		if match == nil {
			return
		}
		k.callbacks.Remove(match)
	}
}
