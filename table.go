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

// Thread Table: ownership of thread records, organized as per-priority
// ordered collections, with the membership and lifecycle operations of
// SPEC_FULL.md §4.1.

package chronos

import (
	"github.com/deep-rent/chronos/internal/fiber"
	"github.com/deep-rent/chronos/klog"
	"github.com/deep-rent/chronos/uuid"
)

// Create allocates a new Thread running entry and inserts it at the
// lowest priority level (0), exactly as thread_create does — a thread
// earns a higher priority only by an explicit later call to Priority.
// The stackSize argument is accepted for source fidelity (the original
// sized a raw stack allocation) but otherwise unused: a Thread's
// execution context is a goroutine, whose stack grows on demand.
//
// Create returns ErrAllocationFailure if entry is nil, the direct
// counterpart of the source returning NULL when malloc fails.
func (k *Kernel) Create(entry EntryFunc, stackSize uint16) (*Thread, error) {
	if entry == nil {
		return nil, ErrAllocationFailure
	}

	t := &Thread{
		id:    uuid.New(),
		k:     k,
		prio:  0,
		flags: 0,
	}
	t.fiber = fiber.New(func() { entry(k) })

	k.mu.Lock()
	k.threads[0].Add(t)
	k.mu.Unlock()

	k.log.Debug("thread created", klog.Component("table"), "thread", t.id)
	return t, nil
}

// Kill removes a thread unconditionally: in the source this also frees
// the thread's stack and record; in Go there is nothing to free beyond
// unlinking the record, since the garbage collector reclaims the Thread
// once nothing references it and the parked goroutine (if the thread was
// never dispatched again) is abandoned exactly as an un-freed stack would
// have been. Kill must not be called on the currently running thread —
// use End from within the thread itself instead.
func (k *Kernel) Kill(t *Thread) {
	if t == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.threads[t.prio].Remove(t)
}

// Priority changes the current thread's priority, clamping to
// [0, MaxPriority()). A priority change of the currently running thread
// takes effect at the next scheduler pass, matching SPEC_FULL.md §4.1.
// Returns ErrNotInThreadContext if called outside a thread.
func (k *Kernel) Priority(prio int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	t := k.current
	if t == nil {
		return ErrNotInThreadContext
	}
	prio = k.clampPriority(prio)
	if t.prio == prio {
		return nil
	}
	k.threads[t.prio].Remove(t)
	t.prio = prio
	k.threads[prio].Add(t)
	return nil
}

// IsRunning reports whether t is currently linked into any priority
// collection — i.e. it has neither been Killed nor reached End.
func (k *Kernel) IsRunning(t *Thread) bool {
	if t == nil {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	for i := 0; i < k.maxPrio; i++ {
		if k.threads[i].Contains(t) {
			return true
		}
	}
	return false
}
