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

package plist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name string
	size int
	node Node[*item]
}

func newItem(name string, size int) *item {
	it := &item{name: name, size: size}
	it.node.Init(it)
	return it
}

func bySizeDesc(a, b *item) int {
	if a.size > b.size {
		return -1
	}
	if a.size < b.size {
		return 1
	}
	return 0
}

func names(l *List[*item]) []string {
	var ret []string
	l.Each(func(it *item) bool {
		ret = append(ret, it.name)
		return true
	})
	return ret
}

func TestInsertAfterBefore(t *testing.T) {
	var l List[*item]
	a, b, c := newItem("a", 0), newItem("b", 0), newItem("c", 0)

	l.Append(&a.node)
	InsertAfter(&a.node, &c.node)
	InsertBefore(&c.node, &b.node)
	assert.Equal(t, []string{"a", "b", "c"}, names(&l))
	assert.Equal(t, 3, l.Len())

	assert.Same(t, &a.node, b.node.Left())
	assert.Same(t, &c.node, b.node.Right())
	assert.Nil(t, c.node.Right())

	// nil args are no-ops
	InsertAfter(nil, &a.node)
	InsertAfter(&a.node, nil)
	InsertBefore[*item](nil, nil)
	Remove[*item](nil)
	l.Append(nil)
	assert.Equal(t, []string{"a", "b", "c"}, names(&l))
}

func TestRemove(t *testing.T) {
	var l List[*item]
	a, b, c := newItem("a", 0), newItem("b", 0), newItem("c", 0)
	l.Append(&a.node)
	l.Append(&b.node)
	l.Append(&c.node)

	Remove(&b.node) // middle
	assert.Equal(t, []string{"a", "c"}, names(&l))
	assert.False(t, b.node.Linked())

	Remove(&c.node) // tail
	assert.Equal(t, []string{"a"}, names(&l))

	Remove(&a.node) // first
	assert.True(t, l.Empty())
	assert.Nil(t, l.Front())
	assert.Equal(t, 0, l.Len())

	l.Append(&b.node)
	assert.Same(t, b, l.Front().Owner())
	l.Init()
	assert.True(t, l.Empty())
}

func TestPriorityInsert(t *testing.T) {
	var l List[*item]
	for _, it := range []*item{
		newItem("40", 40),
		newItem("10", 10),
		newItem("90", 90),
		newItem("40b", 40),
		newItem("0", 0),
		newItem("90b", 90),
	} {
		l.PriorityInsert(&it.node, bySizeDesc)
	}
	// ties keep insertion order
	assert.Equal(t, []string{"90", "90b", "40", "40b", "10", "0"}, names(&l))
	assert.Equal(t, 90, l.Front().Owner().size)

	it := newItem("50", 50)
	l.PriorityInsert(&it.node, bySizeDesc)
	assert.Equal(t, []string{"90", "90b", "50", "40", "40b", "10", "0"}, names(&l))

	l.PriorityInsert(nil, bySizeDesc)
	assert.Equal(t, 7, l.Len())
}

func TestSearch(t *testing.T) {
	var l List[*item]
	for _, n := range []string{"x", "y", "z"} {
		it := newItem(n, len(n))
		l.Append(&it.node)
	}
	byName := func(it *item, name string) int {
		if it.name == name {
			return 0
		}
		return 1
	}

	it, ok := Search(&l, "y", byName)
	require.True(t, ok)
	assert.Equal(t, "y", it.name)

	it, ok = Search(&l, "w", byName)
	assert.False(t, ok)
	assert.Nil(t, it)
}

func TestEachStop(t *testing.T) {
	var l List[*item]
	for i := 0; i < 5; i++ {
		it := newItem("n", i)
		l.Append(&it.node)
	}
	n := 0
	l.Each(func(*item) bool {
		n++
		return n < 2
	})
	assert.Equal(t, 2, n)
}
