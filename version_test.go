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

func TestCompatibleWith_SameVersion(t *testing.T) {
	assert.True(t, chronos.CompatibleWith(chronos.Version))
}

func TestCompatibleWith_OlderMinorIsCompatible(t *testing.T) {
	assert.True(t, chronos.CompatibleWith("v0.0.0"))
}

func TestCompatibleWith_NewerMinorIsIncompatible(t *testing.T) {
	assert.False(t, chronos.CompatibleWith("v0.999.0"))
}

func TestCompatibleWith_DifferentMajorIsIncompatible(t *testing.T) {
	assert.False(t, chronos.CompatibleWith("v1.0.0"))
}

func TestCompatibleWith_InvalidVersionIsIncompatible(t *testing.T) {
	assert.False(t, chronos.CompatibleWith("not-a-version"))
}
