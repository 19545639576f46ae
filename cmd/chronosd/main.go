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

// Command chronosd hosts a ChronOS kernel as a long-running process. It
// exists mainly to give the executive a runnable shape: a handful of
// demonstration threads cooperating through sleep, signal and a mutex,
// driven by Run until an OS signal arrives.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/deep-rent/chronos"
	"github.com/deep-rent/chronos/flag"
	"github.com/deep-rent/chronos/klog"
)

func main() {
	var (
		maxPrio    int
		tickPeriod time.Duration
		logFormat  string
	)

	flag.Add(&maxPrio, "p", "max-priority", "Number of thread priority levels")
	flag.Add(&tickPeriod, "t", "tick-period", "Duration between kernel ticks")
	flag.Add(&logFormat, "f", "log-format", "Log format: text or json")
	flag.Parse()

	format := klog.FormatText
	if logFormat == "json" {
		format = klog.FormatJSON
	}
	log := klog.New(klog.WithFormat(format), klog.WithLevel(slog.LevelDebug))

	opts := []chronos.Option{chronos.WithLogger(log)}
	if maxPrio > 0 {
		opts = append(opts, chronos.WithMaxPriority(maxPrio))
	}
	if tickPeriod > 0 {
		opts = append(opts, chronos.WithTickPeriod(tickPeriod))
	}

	k := chronos.New(opts...)
	spawnDemo(k)

	if err := chronos.Run(context.Background(), k); err != nil {
		fmt.Fprintln(os.Stderr, "chronosd:", err)
		os.Exit(1)
	}
}

// spawnDemo creates two cooperating threads: a producer that signals a
// shared event every second, and a consumer that waits on it and reports
// how many times it has fired.
func spawnDemo(k *chronos.Kernel) {
	type tick struct{}

	count := 0
	var m chronos.Mutex

	_, _ = k.Create(func(k *chronos.Kernel) {
		for k.NotTerminated() {
			k.Sleep(100)
			k.Signal(tick{})
		}
	}, 0)

	_, _ = k.Create(func(k *chronos.Kernel) {
		for k.NotTerminated() {
			if k.Wait(tick{}) {
				k.Lock(&m)
				count++
				k.Unlock(&m)
				fmt.Printf("chronosd: event fired %d times\n", count)
			}
		}
	}, 0)
}
