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
	"time"

	"github.com/deep-rent/chronos/klog"
)

const defaultMaxPriority = 3 // matches the source's MAX_PRIO default

type config struct {
	maxPrio    int
	log        *slog.Logger
	tickPeriod time.Duration
}

// Option configures a Kernel built by New.
type Option func(*config)

// WithMaxPriority sets the number of priority levels, P, such that
// threads range over [0, P). The source default is 3.
func WithMaxPriority(p int) Option {
	return func(c *config) {
		if p > 0 {
			c.maxPrio = p
		}
	}
}

// WithLogger sets the logger the kernel uses for diagnostic events
// (thread creation, recovered callback panics, run start and stop).
// The default is klog.Silent.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTickPeriod sets the duration Run should advance ticks by when
// driving the kernel from a hal.RealTicker. It has no effect on the
// Kernel itself, which is agnostic to wall-clock time; see
// hal.PeriodFromClock to derive this from a peripheral clock frequency.
func WithTickPeriod(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.tickPeriod = d
		}
	}
}

func newConfig(opts ...Option) config {
	c := config{
		maxPrio:    defaultMaxPriority,
		log:        klog.Silent(),
		tickPeriod: 10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
