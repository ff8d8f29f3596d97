/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package plist implements an intrusive doubly linked list that can be kept
// ordered by a caller supplied comparator.
//
// A Node is embedded into the record it links and carries a back-reference
// to that record, so the list never allocates and never needs pointer
// arithmetic to get from a node back to its owner.
package plist

// Node is the linkage embedded into a record of type T.
type Node[T any] struct {
	left  *Node[T]
	right *Node[T]
	owner T
}

// Init unlinks the node and binds it to its owning record.
func (n *Node[T]) Init(owner T) {
	n.left = nil
	n.right = nil
	n.owner = owner
}

// Owner returns the record the node is embedded in.
func (n *Node[T]) Owner() T { return n.owner }

// Left returns the previous node, or nil.
func (n *Node[T]) Left() *Node[T] { return n.left }

// Right returns the next node, or nil.
func (n *Node[T]) Right() *Node[T] { return n.right }

// Linked reports whether the node has a neighbor.
// A node that belongs to a List always has one since the head precedes it.
func (n *Node[T]) Linked() bool {
	return n.left != nil || n.right != nil
}

// InsertAfter links n right after cur.
func InsertAfter[T any](cur, n *Node[T]) {
	if cur == nil || n == nil {
		return
	}
	next := cur.right
	cur.right = n
	n.left = cur
	n.right = next
	if next != nil {
		next.left = n
	}
}

// InsertBefore links n right before cur.
func InsertBefore[T any](cur, n *Node[T]) {
	if cur == nil || n == nil {
		return
	}
	prev := cur.left
	cur.left = n
	n.right = cur
	n.left = prev
	if prev != nil {
		prev.right = n
	}
}

// Remove unlinks n and reconnects its neighbors.
func Remove[T any](n *Node[T]) {
	if n == nil {
		return
	}
	if n.left != nil {
		n.left.right = n.right
	}
	if n.right != nil {
		n.right.left = n.left
	}
	n.left = nil
	n.right = nil
}

// List is a list of nodes anchored by a head node.
// The zero value is an empty list ready to use.
type List[T any] struct {
	head Node[T]
}

// Init empties the list. Nodes still linked to it are left dangling.
func (l *List[T]) Init() {
	l.head.left = nil
	l.head.right = nil
}

// Front returns the first node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] { return l.head.right }

// Empty reports whether the list has no nodes.
func (l *List[T]) Empty() bool { return l.head.right == nil }

// Append links n after the last node. It walks the whole list.
func (l *List[T]) Append(n *Node[T]) {
	if n == nil {
		return
	}
	last := &l.head
	for last.right != nil {
		last = last.right
	}
	InsertAfter(last, n)
}

// Len counts the nodes of the list. It walks the whole list.
func (l *List[T]) Len() int {
	c := 0
	for n := l.head.right; n != nil; n = n.right {
		c++
	}
	return c
}

// PriorityInsert links n so that the list stays ordered by cmp.
//
// cmp(a, b) < 0 means a goes before b. n is placed after every node it
// compares equal to.
func (l *List[T]) PriorityInsert(n *Node[T], cmp func(a, b T) int) {
	if n == nil {
		return
	}
	prev := &l.head
	for cur := l.head.right; cur != nil; cur = cur.right {
		if cmp(n.owner, cur.owner) < 0 {
			InsertBefore(cur, n)
			return
		}
		prev = cur
	}
	InsertAfter(prev, n)
}

// Each calls fn for every owner from front to back until fn returns false.
// fn must not unlink the node it is called for.
func (l *List[T]) Each(fn func(owner T) bool) {
	for n := l.head.right; n != nil; n = n.right {
		if !fn(n.owner) {
			return
		}
	}
}

// Search returns the first owner for which cmp(owner, key) == 0.
func Search[T, K any](l *List[T], key K, cmp func(owner T, key K) int) (T, bool) {
	for n := l.head.right; n != nil; n = n.right {
		if cmp(n.owner, key) == 0 {
			return n.owner, true
		}
	}
	var zero T
	return zero, false
}
