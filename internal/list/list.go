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

// Package list implements the intrusive doubly-linked collection that backs
// the thread and callback tables of the chronos kernel.
//
// Nodes carry their own prev/next pointers instead of living inside a
// container, the same layout the original executive used for its
// volatile thread_t/callback_t lists: insertion, removal and membership
// checks are all O(1) or O(n) without touching any other allocation, and a
// node always knows how to unlink itself.
package list

// Node embeds into any element tracked by a List.
type Node[T any] struct {
	prev, next *T
	self       *T
}

// Node returns the node itself; embedding Node[T] promotes this method
// onto T, which is what satisfies Linked[T].
func (n *Node[T]) Node() *Node[T] { return n }

// List is an ordered, doubly-linked collection of elements of type T. T
// must embed Node[T] and implement Linked[T] so the list can reach the
// embedded node from any element.
type List[T Linked[T]] struct {
	head, tail *T
	length     int
}

// Linked is implemented by any type that embeds Node[T], giving List
// access to the intrusive link fields.
type Linked[T any] interface {
	Node() *Node[T]
}

// Add appends an element to the end of the list, mirroring list_add.
func (l *List[T]) Add(item *T) {
	n := item.Node()
	n.self = item
	if l.head == nil {
		l.head, l.tail = item, item
		n.prev, n.next = nil, nil
		l.length = 1
		return
	}
	n.prev = l.tail
	n.next = nil
	tailNode := (*l.tail).Node()
	tailNode.next = item
	l.tail = item
	l.length++
}

// Push inserts an element at the front of the list, mirroring list_push.
func (l *List[T]) Push(item *T) {
	n := item.Node()
	n.self = item
	if l.head == nil {
		l.head, l.tail = item, item
		n.prev, n.next = nil, nil
		l.length = 1
		return
	}
	n.next = l.head
	n.prev = nil
	(*l.head).Node().prev = item
	l.head = item
	l.length++
}

// Remove unlinks an element from the list. It is a no-op if item is nil
// or the list is empty. Removing an element not actually present in the
// list leaves the list in an undefined state, matching the contract of
// the original list_remove.
func (l *List[T]) Remove(item *T) {
	if item == nil || l.head == nil {
		return
	}
	n := item.Node()
	p, q := n.next, n.prev

	if l.head == item {
		l.head = p
		if p != nil {
			(*p).Node().prev = q
		} else {
			l.tail = nil
		}
		l.length--
		n.prev, n.next, n.self = nil, nil, nil
		return
	}
	if p != nil {
		(*p).Node().prev = q
	} else {
		l.tail = q
	}
	if q != nil {
		(*q).Node().next = p
	}
	n.prev, n.next, n.self = nil, nil, nil
	l.length--
}

// Pop removes and returns the first element, or nil if the list is empty.
func (l *List[T]) Pop() *T {
	if l.head == nil {
		return nil
	}
	item := l.head
	l.Remove(item)
	return item
}

// Contains reports whether item is currently linked into the list.
func (l *List[T]) Contains(item *T) bool {
	for p := l.head; p != nil; p = (*p).Node().next {
		if p == item {
			return true
		}
	}
	return false
}

// Len returns the number of elements currently in the list.
func (l *List[T]) Len() int {
	return l.length
}

// Each calls fn for every element currently in the list, in collection
// order. fn must not mutate the list; use Pop/Remove from a dedicated
// loop (see the kernel's callback-dispatch phase) when mutation during
// iteration is required.
func (l *List[T]) Each(fn func(*T)) {
	for p := l.head; p != nil; {
		next := (*p).Node().next
		fn(p)
		p = next
	}
}

// First returns the first element, or nil if the list is empty.
func (l *List[T]) First() *T {
	return l.head
}

// Next returns the element following item, or nil if item is the last
// element (or not linked).
func (l *List[T]) Next(item *T) *T {
	return item.Node().next
}
