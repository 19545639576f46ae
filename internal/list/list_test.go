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

package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Node[item]
	v int
}

func vals(items []*item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.v
	}
	return out
}

func collect(l *List[item]) []int {
	var out []int
	l.Each(func(it *item) { out = append(out, it.v) })
	return out
}

func TestAddPreservesOrder(t *testing.T) {
	var l List[item]
	a, b, c := &item{v: 1}, &item{v: 2}, &item{v: 3}
	l.Add(a)
	l.Add(b)
	l.Add(c)
	assert.Equal(t, []int{1, 2, 3}, collect(&l))
	assert.Equal(t, 3, l.Len())
}

func TestPushInsertsAtFront(t *testing.T) {
	var l List[item]
	a, b := &item{v: 1}, &item{v: 2}
	l.Add(a)
	l.Push(b)
	assert.Equal(t, []int{2, 1}, collect(&l))
}

func TestRemoveHead(t *testing.T) {
	var l List[item]
	a, b, c := &item{v: 1}, &item{v: 2}, &item{v: 3}
	l.Add(a)
	l.Add(b)
	l.Add(c)
	l.Remove(a)
	assert.Equal(t, []int{2, 3}, collect(&l))
	assert.False(t, l.Contains(a))
}

func TestRemoveTail(t *testing.T) {
	var l List[item]
	a, b, c := &item{v: 1}, &item{v: 2}, &item{v: 3}
	l.Add(a)
	l.Add(b)
	l.Add(c)
	l.Remove(c)
	assert.Equal(t, []int{1, 2}, collect(&l))
}

func TestRemoveMiddle(t *testing.T) {
	var l List[item]
	a, b, c := &item{v: 1}, &item{v: 2}, &item{v: 3}
	l.Add(a)
	l.Add(b)
	l.Add(c)
	l.Remove(b)
	assert.Equal(t, []int{1, 3}, collect(&l))
}

func TestRemoveOnlyElement(t *testing.T) {
	var l List[item]
	a := &item{v: 1}
	l.Add(a)
	l.Remove(a)
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.First())
	assert.Nil(t, l.Pop())
}

func TestRemoveNilIsNoop(t *testing.T) {
	var l List[item]
	a := &item{v: 1}
	l.Add(a)
	l.Remove(nil)
	assert.Equal(t, 1, l.Len())
}

func TestPop(t *testing.T) {
	var l List[item]
	a, b := &item{v: 1}, &item{v: 2}
	l.Add(a)
	l.Add(b)
	popped := l.Pop()
	require.NotNil(t, popped)
	assert.Equal(t, 1, popped.v)
	assert.Equal(t, []int{2}, collect(&l))
}

func TestContainsAndLength(t *testing.T) {
	var l List[item]
	a, b := &item{v: 1}, &item{v: 2}
	l.Add(a)
	assert.True(t, l.Contains(a))
	assert.False(t, l.Contains(b))
	assert.Equal(t, 1, l.Len())
}
