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
	"log/slog"
	"sync"
	"time"

	"github.com/deep-rent/chronos/internal/list"
)

// Kernel holds every piece of global state the source kept as file-scope
// singletons: the per-priority thread collections, the callback
// collection, the currently dispatched thread, and the monotonic tick
// counter. It is the Go encapsulation Design Notes §9 calls for ("they
// should be encapsulated behind module-private accessors and initialized
// exactly once").
//
// All mutation goes through mu, the Go rendering of the source's
// interrupt-disable/enable discipline (see SPEC_FULL.md §5): a single
// mutex, because the flag word, data and timer fields of a thread record
// must move together as one unit, which a per-field atomic cannot give.
type Kernel struct {
	mu sync.Mutex

	maxPrio   int
	threads   []list.List[Thread]
	callbacks list.List[Callback]
	current   *Thread
	ticks     uint32

	log        *slog.Logger
	tickPeriod time.Duration
}

// New creates a Kernel, the Go counterpart of kernel_init. Unlike the
// source, there is no peripheral clock argument: tick period is a
// property of whatever drives Tick (see Run and hal.PeriodFromClock),
// not of the kernel's own state.
func New(opts ...Option) *Kernel {
	c := newConfig(opts...)
	k := &Kernel{
		maxPrio:    c.maxPrio,
		threads:    make([]list.List[Thread], c.maxPrio),
		log:        c.log,
		tickPeriod: c.tickPeriod,
	}
	return k
}

// Delay blocks the calling goroutine for the given duration with
// time.Sleep, without yielding to any other thread. It is the direct
// counterpart of the source's busy-waiting delay(cycles): not a
// cooperative suspension point, and must
// never be called from within a dispatched thread's entry if other
// threads are expected to make progress.
func (k *Kernel) Delay(d time.Duration) {
	time.Sleep(d)
}

// MaxPriority returns P, the number of priority levels threads range
// over: [0, P).
func (k *Kernel) MaxPriority() int {
	return k.maxPrio
}

// Ticks returns the monotonic tick counter, advanced once per call to
// Tick. It wraps modulo 2^32, matching the source's volatile uint32_t.
func (k *Kernel) Ticks() uint32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ticks
}

func (k *Kernel) clampPriority(p int) int {
	if p < 0 {
		return 0
	}
	if p >= k.maxPrio {
		return k.maxPrio - 1
	}
	return p
}
