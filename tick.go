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

// Tick Engine: the handler invoked once per hardware timer interrupt
// (SPEC_FULL.md §4.2). It advances the monotonic clock and every armed
// timer, promoting an expired wait/lock timer to a timeout.
//
// Note on a spec ambiguity resolved against original_source/src/chronos.c:
// spec.md's prose for this step reads "clear waiting/semaphore/suspend/
// nice bits wholesale ... and set timeout", which would clear the nice
// bit on every timeout. The source's os_tick clears only MASK_WAIT
// (time_pending|waiting|semaphore|suspend) — it never touches nice here.
// Per the task's own resolution rule (follow original_source when spec
// prose is ambiguous or silent on an exact detail), this implementation
// follows the source: nice is left untouched by Tick, and is only ever
// cleared by the scheduler's round-robin reset (see dispatch.go). See
// DESIGN.md for the full account.

package chronos

// Tick advances the tick counter by one and runs every armed timer down.
// It must be invoked from a single caller at the kernel's tick rate (see
// Run and hal.Ticker) — concurrent callers would race on which interrupt
// "wins", a condition the source's hardware can't produce either.
func (k *Kernel) Tick() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.ticks++

	k.callbacks.Each(func(cb *Callback) {
		if cb.timer > 0 {
			cb.timer--
		}
	})

	for i := 0; i < k.maxPrio; i++ {
		k.threads[i].Each(func(t *Thread) {
			if t.timer == 0 {
				return
			}
			t.timer--
			if t.timer != 0 {
				return
			}
			if t.flags&maskTimeout != 0 {
				t.flags &^= maskWait
				t.flags |= flagTimeout
			}
			t.flags &^= flagTimePending
		})
	}
}
