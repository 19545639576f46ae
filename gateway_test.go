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

package chronos_test

import (
	"testing"

	"github.com/deep-rent/chronos"
	"github.com/stretchr/testify/assert"
)

// TestYield_RoundRobin exercises spec.md §8's two-priority-0-threads
// scenario: threads at the same level take turns, one per Step, and a
// full pass through the level clears every nice bit before anyone runs
// twice in a row.
func TestYield_RoundRobin(t *testing.T) {
	k := chronos.New(chronos.WithMaxPriority(1))

	var order []string
	_, _ = k.Create(func(k *chronos.Kernel) {
		for k.NotTerminated() {
			order = append(order, "A")
			k.Yield()
		}
	}, 0)
	_, _ = k.Create(func(k *chronos.Kernel) {
		for k.NotTerminated() {
			order = append(order, "B")
			k.Yield()
		}
	}, 0)

	var dispatched []string
	for len(dispatched) < 4 {
		before := len(order)
		k.Step()
		if len(order) > before {
			dispatched = append(dispatched, order[len(order)-1])
		}
	}

	assert.Equal(t, []string{"A", "B", "A", "B"}, dispatched)
}

// TestSleep_WakesAfterArmedTicks exercises spec.md §8's sleep(10) timing
// scenario (here with a smaller count for a snappier test): the thread
// stays blocked until exactly that many Ticks have elapsed, and wakes
// with a normal (non-timeout) result.
func TestSleep_WakesAfterArmedTicks(t *testing.T) {
	k := chronos.New(chronos.WithMaxPriority(1))

	var woke bool
	var result bool
	_, _ = k.Create(func(k *chronos.Kernel) {
		result = k.Sleep(3)
		woke = true
		k.Sleep(^uint32(0))
	}, 0)

	k.Step() // dispatch into Sleep(3); thread parks immediately.
	assert.False(t, woke)

	k.Tick()
	k.Tick()
	assert.False(t, k.Step(), "still asleep with one tick left")
	assert.False(t, woke)

	k.Tick() // third tick: timer reaches zero, time_pending clears.
	assert.True(t, k.Step(), "thread should be ready and dispatched")
	assert.True(t, woke)
	assert.True(t, result, "a normal wakeup must report true, not a timeout")
}

// TestWait_Signal exercises spec.md §8's wait/signal scenario: Signal
// releases a waiter immediately, without needing to wait for a tick.
func TestWait_Signal(t *testing.T) {
	k := chronos.New(chronos.WithMaxPriority(1))

	type event struct{}
	var result bool
	var done bool
	_, _ = k.Create(func(k *chronos.Kernel) {
		result = k.Wait(event{})
		done = true
		k.Sleep(^uint32(0))
	}, 0)

	k.Step() // thread parks in Wait.
	assert.False(t, done)

	k.Signal(event{})

	assert.True(t, k.Step())
	assert.True(t, done)
	assert.True(t, result)
}

// TestSetTimeout_Wait_TimesOut exercises spec.md §8's bounded-wait
// scenario: SetTimeout arms a deadline without suspending, and the
// following Wait returns false once that deadline elapses with no
// Signal ever arriving.
func TestSetTimeout_Wait_TimesOut(t *testing.T) {
	k := chronos.New(chronos.WithMaxPriority(1))

	type event struct{}
	var result bool
	var done bool
	_, _ = k.Create(func(k *chronos.Kernel) {
		k.SetTimeout(2)
		result = k.Wait(event{})
		done = true
		k.Sleep(^uint32(0))
	}, 0)

	k.Step() // SETTIMEOUT returns to caller immediately, then WAIT parks.
	assert.False(t, done)

	k.Tick()
	assert.False(t, k.Step())
	assert.False(t, done)

	k.Tick() // timer reaches zero: maskTimeout is set, so WAIT times out.
	assert.True(t, k.Step())
	assert.True(t, done)
	assert.False(t, result, "an expired timeout must report false")
}

// TestLock_Unlock_TransfersOwnership exercises spec.md §8's mutex
// scenario: a waiter blocked on a held mutex receives ownership directly
// from Unlock — the mutex never observably becomes free in between, and
// the waiter's own Lock call reports a normal (non-timeout) success.
func TestLock_Unlock_TransfersOwnership(t *testing.T) {
	k := chronos.New(chronos.WithMaxPriority(2))
	var m chronos.Mutex

	var holderDone, waiterDone bool
	var waiterResult bool

	// Created first, so selected first at its level: takes the lock,
	// then yields to let the waiter attempt it, then unlocks.
	_, _ = k.Create(func(k *chronos.Kernel) {
		k.Lock(&m)
		k.Yield()
		k.Unlock(&m)
		holderDone = true
		k.Sleep(^uint32(0))
	}, 0)

	// Created second: raises its own priority once running, then blocks
	// on the already-held mutex.
	var waiter *chronos.Thread
	waiter, _ = k.Create(func(k *chronos.Kernel) {
		_ = k.Priority(1)
		waiterResult = k.Lock(&m)
		waiterDone = true
		k.Sleep(^uint32(0))
	}, 0)

	k.Step() // holder runs: locks m, then yields.
	assert.Equal(t, chronos.MutexLocked, m)

	k.Step() // waiter runs: raises its priority, then blocks on m.
	assert.Equal(t, 1, waiter.Priority())
	assert.False(t, waiterDone)

	k.Step() // holder's nice bit is cleared; nobody is dispatched yet.

	k.Step() // holder runs: unlocks, transferring ownership to the waiter.
	assert.True(t, holderDone)
	assert.Equal(t, chronos.MutexLocked, m, "ownership transfers without an intervening free state")
	assert.False(t, waiterDone)

	k.Step() // waiter runs: its blocked Lock call now returns.
	assert.True(t, waiterDone)
	assert.True(t, waiterResult, "a transferred lock is a normal success, not a timeout")
}
