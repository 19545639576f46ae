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

func TestUnlock_FreeMutex_IsNoop(t *testing.T) {
	k := chronos.New()
	var m chronos.Mutex
	k.Unlock(&m)
	assert.Equal(t, chronos.MutexFree, m)
}

func TestSignal_NoWaiter_IsNoop(t *testing.T) {
	k := chronos.New()
	assert.NotPanics(t, func() { k.Signal("nothing is waiting on this") })
}

func TestForce_ReleasesWaiterAsTimeout(t *testing.T) {
	k := chronos.New(chronos.WithMaxPriority(1))

	type event struct{}
	var result bool
	var done bool
	var self *chronos.Thread
	self, _ = k.Create(func(k *chronos.Kernel) {
		result = k.Wait(event{})
		done = true
		k.Sleep(^uint32(0))
	}, 0)

	k.Step() // thread parks in Wait.
	assert.False(t, done)

	k.Force(self)
	assert.True(t, k.Step())
	assert.True(t, done)
	assert.False(t, result, "Force must look like a timeout to the waiter")
}

func TestSuspend_Release(t *testing.T) {
	k := chronos.New(chronos.WithMaxPriority(1))

	var runs int
	var self *chronos.Thread
	self, _ = k.Create(func(k *chronos.Kernel) {
		for k.NotTerminated() {
			runs++
			k.Yield()
		}
	}, 0)

	assert.True(t, k.Step())
	assert.Equal(t, 1, runs)

	k.Suspend(self)
	for i := 0; i < 3; i++ {
		k.Step()
	}
	assert.Equal(t, 1, runs, "a suspended thread must never be dispatched")

	k.Release(self)
	assert.True(t, k.Step())
	assert.Equal(t, 2, runs)
}

func TestTerminate_UnblocksAndMarksTerminated(t *testing.T) {
	k := chronos.New(chronos.WithMaxPriority(1))

	var observedTerminated bool
	var self *chronos.Thread
	self, _ = k.Create(func(k *chronos.Kernel) {
		k.Wait("never signalled")
		observedTerminated = k.Terminated()
		k.End()
	}, 0)

	k.Step() // parks in Wait.

	k.Terminate(self)
	assert.True(t, k.Step())
	assert.True(t, observedTerminated)
}

// TestFire_CallbackRunsAfterArmedTicks exercises spec.md §8's deferred
// callback scenario: a callback fired with a 3-tick delay is invisible to
// the scheduler's callback-dispatch phase until exactly that many Ticks
// have elapsed.
func TestFire_CallbackRunsAfterArmedTicks(t *testing.T) {
	k := chronos.New()

	var ran bool
	var param any
	k.Fire(func(p any) {
		ran = true
		param = p
	}, "payload", 3)

	assert.Equal(t, 1, k.CallbackCount())

	k.Tick()
	k.Step()
	assert.False(t, ran)

	k.Tick()
	k.Step()
	assert.False(t, ran)

	k.Tick() // third tick: timer reaches zero.
	k.Step() // the scheduler's callback-dispatch phase runs it.
	assert.True(t, ran)
	assert.Equal(t, "payload", param)
	assert.Equal(t, 0, k.CallbackCount())
}

func TestRefire_ReplacesPendingDelayAndParam(t *testing.T) {
	k := chronos.New()

	var param any
	fn := func(p any) { param = p }

	k.Fire(fn, "first", 10)
	k.Refire(fn, "second", 1)

	assert.Equal(t, 1, k.CallbackCount(), "Refire must update in place, not add a second entry")

	k.Tick()
	k.Step()
	assert.Equal(t, "second", param)
}

func TestCancel_RemovesEveryMatchingCallback(t *testing.T) {
	k := chronos.New()

	fn := func(any) {}
	k.Fire(fn, nil, 5)
	k.Fire(fn, nil, 5)
	k.Fire(func(any) {}, nil, 5)
	assert.Equal(t, 3, k.CallbackCount())

	k.Cancel(fn)
	assert.Equal(t, 1, k.CallbackCount())
}
