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

// Package chronos implements a minimalist cooperative real-time executive:
// a thread table, a tick-driven timer engine, a priority scheduler with
// intra-level round robin, a single service gateway threads call into to
// suspend themselves, and a small support API for signalling, mutexes and
// deferred callbacks.
//
// Threads are cooperative: a Thread only ever suspends by calling one of
// the Kernel methods backed by the service gateway (Yield, Sleep, Wait,
// Lock, End) — there is no preemption and no time slicing. Strict
// priority is enforced across levels; within one level, threads that have
// yielded take turns in a round robin until every sibling has run once.
//
// # Usage
//
//	k := chronos.New()
//	mu := new(chronos.Mutex)
//
//	a, _ := k.Create(func(k *chronos.Kernel) {
//		for k.NotTerminated() {
//			k.Lock(mu)
//			// critical section
//			k.Unlock(mu)
//			k.Yield()
//		}
//		k.End()
//	}, 0)
//
//	ticker := hal.NewManualTicker()
//	go chronos.Run(context.Background(), k, chronos.WithTicker(ticker))
package chronos
