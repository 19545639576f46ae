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

import "errors"

// ErrAllocationFailure is returned by Create when it cannot produce a new
// thread record, which in this implementation happens only when entry is
// nil. The source's create returns null when allocation fails; Go has no
// allocation-failure signal under normal operation, but
// the sentinel is kept so callers that want to treat exhaustion as a
// first-class condition (e.g. a bounded thread-pool policy) can.
var ErrAllocationFailure = errors.New("chronos: allocation failure")

// ErrNotInThreadContext is returned by service-gateway methods when no
// thread is currently dispatched — the Go analogue of kernel_call
// returning false because _thrp is NULL.
var ErrNotInThreadContext = errors.New("chronos: not in thread context")
