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

// Service Gateway: the single entry point from thread context into the
// kernel (SPEC_FULL.md §4.4). Every suspending operation a thread
// performs funnels through KernelCall.

package chronos

// ServiceFunc identifies a kernel service requested via KernelCall. The
// numeric values match the source's SV_* defines; SvSignal and SvUnlock
// are listed for source fidelity but, as in the original, are never
// routed through KernelCall — thread_signal and thread_unlock are called
// directly (see support.go).
type ServiceFunc uint16

const (
	SvYield      ServiceFunc = 0
	SvSleep      ServiceFunc = 1
	SvSetTimeout ServiceFunc = 2
	SvWait       ServiceFunc = 3
	SvSignal     ServiceFunc = 4
	SvLock       ServiceFunc = 5
	SvUnlock     ServiceFunc = 6
	SvEnd        ServiceFunc = 9
)

// KernelCall is the Service Gateway's single entry point. It is callable
// only from within a dispatched thread's entry function; called any other
// way it returns ErrNotInThreadContext immediately. It may not return to
// its caller right away: for YIELD, SLEEP, WAIT and END it parks the
// calling goroutine and returns only once the scheduler dispatches this
// thread again, yielding false if that resumption was due to a timeout
// rather than normal signalling.
func (k *Kernel) KernelCall(fn ServiceFunc, arg any) (bool, error) {
	k.mu.Lock()
	t := k.current
	if t == nil {
		k.mu.Unlock()
		return false, ErrNotInThreadContext
	}

	switch fn {
	case SvYield:
		t.flags |= flagNice
		k.current = nil
		k.mu.Unlock()
		return k.parkAndWait(t), nil

	case SvEnd:
		k.threads[t.prio].Remove(t)
		k.current = nil
		k.mu.Unlock()
		t.fiber.End()
		return true, nil // unreachable: End never returns

	case SvSleep:
		n, _ := arg.(uint32)
		t.timer = n
		t.flags |= flagTimePending
		k.current = nil
		k.mu.Unlock()
		return k.parkAndWait(t), nil

	case SvWait:
		t.flags |= flagWaiting
		t.data = arg
		k.current = nil
		k.mu.Unlock()
		return k.parkAndWait(t), nil

	case SvSetTimeout:
		// Unlike every other return-to-caller case, SETTIMEOUT does not
		// run returnToCaller's stale-timer cancellation: the timer it
		// just armed is the point of the call, not a leftover to clear.
		n, _ := arg.(uint32)
		t.timer = n
		t.flags &^= flagTimeout
		k.mu.Unlock()
		return true, nil

	case SvLock:
		m, _ := arg.(*Mutex)
		if m == nil {
			k.returnToCaller(t)
			k.mu.Unlock()
			return true, nil
		}
		if *m == MutexFree {
			*m = MutexLocked
			k.returnToCaller(t)
			k.mu.Unlock()
			return true, nil
		}
		t.flags |= flagSemaphore
		t.data = m
		k.current = nil
		k.mu.Unlock()
		return k.parkAndWait(t), nil

	default:
		// Unrecognized function code: return to caller, no effect —
		// matches the source, whose switch has no default case and
		// simply falls through to return_to_thread_no_timeout.
		k.returnToCaller(t)
		k.mu.Unlock()
		return true, nil
	}
}

// returnToCaller implements the source's return_to_thread_no_timeout
// label: a stale timeout armed by an earlier SETTIMEOUT is cancelled
// unless a sleep timer (time_pending) is still legitimately running.
// Must be called with mu held.
func (k *Kernel) returnToCaller(t *Thread) {
	if t.flags&flagTimePending == 0 {
		t.timer = 0
	}
}

// parkAndWait blocks the calling goroutine until the scheduler dispatches
// t again, then reports whether that resumption was a timeout. Must be
// called without mu held — it blocks on an unbuffered channel handoff
// with the scheduler (see internal/fiber).
func (k *Kernel) parkAndWait(t *Thread) bool {
	t.fiber.Park()
	k.mu.Lock()
	timedOut := t.flags&flagTimeout != 0
	k.mu.Unlock()
	return !timedOut
}

// Yield sets the nice bit and relinquishes the CPU to the next runnable
// thread, the same priority level's round robin making sure every
// sibling gets a turn before this thread runs again.
func (k *Kernel) Yield() bool {
	ok, _ := k.KernelCall(SvYield, nil)
	return ok
}

// Sleep suspends the calling thread for n ticks.
func (k *Kernel) Sleep(n uint32) bool {
	ok, _ := k.KernelCall(SvSleep, n)
	return ok
}

// SetTimeout arms a deadline of n ticks without suspending. Combined with
// a following Wait or Lock, it lets a thread bound how long it will block.
func (k *Kernel) SetTimeout(n uint32) bool {
	ok, _ := k.KernelCall(SvSetTimeout, n)
	return ok
}

// Wait suspends the calling thread until Signal(id) is called with a
// matching id, Force is called on this thread, or an armed timeout
// expires. Returns false on timeout.
func (k *Kernel) Wait(id SignalID) bool {
	ok, _ := k.KernelCall(SvWait, id)
	return ok
}

// Lock acquires m, suspending the calling thread if it is already held.
// Returns false only if an armed timeout expires before the mutex is
// acquired.
func (k *Kernel) Lock(m *Mutex) bool {
	ok, _ := k.KernelCall(SvLock, m)
	return ok
}

// End terminates the calling thread: its record is unlinked and its
// stack (goroutine) never runs again. End does not return.
func (k *Kernel) End() {
	_, _ = k.KernelCall(SvEnd, nil)
}
