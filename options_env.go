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
	"fmt"
	"time"

	"github.com/deep-rent/chronos/env"
)

// envSettings mirrors the subset of Kernel configuration a deployment
// might reasonably want to override without a rebuild: how many priority
// levels to expose and how often to tick when driven by Run's default
// hal.RealTicker.
type envSettings struct {
	MaxPriority int           `env:",default:3"`
	TickPeriod  time.Duration `env:",default:10ms"`
}

// FromEnviron reads CHRONOS_MAX_PRIORITY and CHRONOS_TICK_PERIOD (see
// env.Unmarshal's SNAKE_CASE field mapping) and returns the equivalent
// Options. It is meant to be spliced into New's argument list:
//
//	opts, err := chronos.FromEnviron()
//	if err != nil { ... }
//	k := chronos.New(opts...)
func FromEnviron() ([]Option, error) {
	var s envSettings
	if err := env.Unmarshal(&s, env.WithPrefix("CHRONOS_")); err != nil {
		return nil, fmt.Errorf("chronos: loading environment settings: %w", err)
	}
	return []Option{
		WithMaxPriority(s.MaxPriority),
		WithTickPeriod(s.TickPeriod),
	}, nil
}
