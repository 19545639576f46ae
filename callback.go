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
	"github.com/deep-rent/chronos/internal/list"
	"github.com/deep-rent/chronos/uuid"
)

// CallbackFunc is a deferred function invoked by the scheduler's callback
// dispatch phase, with the opaque parameter it was fired with.
type CallbackFunc func(param any)

// Callback is a deferred, tick-counted invocation of a CallbackFunc.
// Callbacks live in a single ordered collection (insertion order) and are
// freed by the scheduler after invocation, by Cancel, or never run at all
// if allocation for a Fire/Refire fails (it cannot, in Go — see
// ErrAllocationFailure).
type Callback struct {
	list.Node[Callback]

	id    uuid.UUIDv7
	fn    CallbackFunc
	param any
	timer uint32
}

// ID returns a diagnostic identifier for log correlation.
func (c *Callback) ID() uuid.UUIDv7 { return c.id }
