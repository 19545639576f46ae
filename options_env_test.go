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
	"github.com/stretchr/testify/require"
)

func TestFromEnviron_Defaults(t *testing.T) {
	opts, err := chronos.FromEnviron()
	require.NoError(t, err)

	k := chronos.New(opts...)
	assert.Equal(t, 3, k.MaxPriority())
}

func TestFromEnviron_ReadsOverrides(t *testing.T) {
	t.Setenv("CHRONOS_MAX_PRIORITY", "5")
	t.Setenv("CHRONOS_TICK_PERIOD", "50ms")

	opts, err := chronos.FromEnviron()
	require.NoError(t, err)

	k := chronos.New(opts...)
	assert.Equal(t, 5, k.MaxPriority())
}

func TestFromEnviron_InvalidValue_ReturnsError(t *testing.T) {
	t.Setenv("CHRONOS_MAX_PRIORITY", "not-a-number")

	_, err := chronos.FromEnviron()
	assert.Error(t, err)
}
