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

// ThreadCount returns the total number of threads across every priority
// level — the sum of each collection's length (os_count_threads).
func (k *Kernel) ThreadCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := 0
	for i := 0; i < k.maxPrio; i++ {
		n += k.threads[i].Len()
	}
	return n
}

// CallbackCount returns the number of pending callbacks (os_count_callbacks).
func (k *Kernel) CallbackCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.callbacks.Len()
}

// ReadyCount returns the number of threads with no blocking bit set
// (os_count_ready).
//
// The source has two documented bugs here (SPEC_FULL.md §9 / spec.md's
// Open Questions) which this implementation fixes: it used
// "p->flags && MASK_WAIT" — a logical AND, always either 0 or 1 — instead
// of a bitwise test, and it iterated "_threads" (the array's own base
// address) instead of "_threads[i]", so only priority level 0 was ever
// actually visited. Here the test is bitwise and every level is walked.
func (k *Kernel) ReadyCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := 0
	for i := 0; i < k.maxPrio; i++ {
		k.threads[i].Each(func(t *Thread) {
			if t.flags&maskWait == 0 {
				n++
			}
		})
	}
	return n
}
