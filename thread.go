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

package chronos

import (
	"github.com/deep-rent/chronos/internal/fiber"
	"github.com/deep-rent/chronos/internal/list"
	"github.com/deep-rent/chronos/uuid"
)

// EntryFunc is a thread's body. It receives the Kernel it was created on,
// which is also the only handle it needs to call back into the service
// gateway (Yield, Sleep, Wait, Lock, End, ...).
type EntryFunc func(k *Kernel)

// SignalID is the rendezvous key shared between Wait and Signal. Any
// comparable value works — the source used an arbitrary machine word
// compared by equality, and Go's built-in == over a comparable underlying
// type is the direct counterpart.
type SignalID any

// Mutex is a single-byte mutual-exclusion flag: MutexFree (0) or
// MutexLocked (1). Ownership is transferred implicitly by Unlock when a
// waiter exists, never by simply clearing the byte.
type Mutex uint8

const (
	MutexFree   Mutex = 0
	MutexLocked Mutex = 1
)

// Thread is one cooperative execution context. Its identity is implicit:
// the record's address. A Thread is only ever constructed by Kernel.Create.
type Thread struct {
	list.Node[Thread]

	id    uuid.UUIDv7
	k     *Kernel
	fiber *fiber.Fiber

	flags flags
	prio  int
	data  any // SignalID when waiting, *Mutex when semaphore
	timer uint32
}

// ID returns a diagnostic identifier for log correlation. It plays no
// role in scheduling or equality — a Thread's true identity is its
// address.
func (t *Thread) ID() uuid.UUIDv7 { return t.id }

// Priority returns the thread's current priority level.
func (t *Thread) Priority() int { return t.prio }

// State derives the thread's externally observable lifecycle stage from
// its flag word. Existing purely for observability, it never feeds back
// into kernel logic.
func (t *Thread) State(current *Thread) State {
	switch {
	case t.flags&flagTerminate != 0:
		return StateTerminated
	case current == t:
		return StateRunning
	case t.flags&flagSuspend != 0:
		return StateSuspended
	case t.flags&flagSemaphore != 0:
		return StateLockPending
	case t.flags&flagWaiting != 0:
		return StateWaiting
	case t.flags&flagTimePending != 0:
		return StateSleeping
	default:
		return StateReady
	}
}
