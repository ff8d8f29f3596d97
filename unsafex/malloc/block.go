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

package malloc

import "github.com/cloudwego/pagealloc/container/plist"

// page is one data page of a family.
type page struct {
	family *Family
	mem    []byte
	base   uintptr
	units  int

	prev, next *page // family chain

	first  *block
	blocks map[uint32]*block // by header offset
}

// empty reports whether the page is one free block spanning all of it.
func (p *page) empty() bool {
	b := p.first
	return b != nil && b.free && b.next == nil && b.prev == nil
}

// block is a header plus its data inside a page.
type block struct {
	page *page
	off  uint32 // header offset in page
	size uint32 // data bytes, excluding the header

	// requested is the size asked for by Alloc. It's smaller than size if
	// the split remainder could not hold a header.
	requested uint32
	free      bool

	prev, next *block // address order

	// node links the block into the family free list while it's free.
	node plist.Node[*block]
}

func (b *block) dataOff() uint32 { return b.off + blockHeaderSize }

func (b *block) end() uint32 { return b.dataOff() + b.size }

func bySizeDesc(x, y *block) int {
	switch {
	case x.size > y.size:
		return -1
	case x.size < y.size:
		return 1
	}
	return 0
}

// split turns the free block b into an allocated block of n bytes.
// The remainder becomes a new free block if it can hold a header,
// otherwise it stays with b as hard internal fragmentation.
func (f *Family) split(b *block, n uint32) {
	if !b.free {
		panic("malloc: splitting allocated block")
	}
	plist.Remove(&b.node)
	b.free = false
	b.requested = n

	remaining := b.size - n
	if remaining >= blockHeaderSize {
		b.size = n
		nb := &block{
			page: b.page,
			off:  b.end(),
			size: remaining - blockHeaderSize,
			free: true,
			prev: b,
			next: b.next,
		}
		nb.node.Init(nb)
		if b.next != nil {
			b.next.prev = nb
			b.next.sync()
		}
		b.next = nb
		b.page.blocks[nb.off] = nb
		nb.sync()
		f.free.PriorityInsert(&nb.node, bySizeDesc)
	}
	b.sync()
}

// merge absorbs second into first. Both must be free and adjacent.
func (f *Family) merge(first, second *block) {
	if !first.free || !second.free {
		panic("malloc: merging allocated block")
	}
	if first.next != second || second.prev != first || first.end() != second.off {
		panic("malloc: merging non-adjacent blocks")
	}
	plist.Remove(&second.node)
	first.size += blockHeaderSize + second.size
	first.next = second.next
	if second.next != nil {
		second.next.prev = first
		second.next.sync()
	}
	delete(first.page.blocks, second.off)
	second.erase()
	second.prev, second.next = nil, nil
	first.sync()
}

// release frees the allocated block b, merges it with free neighbors and
// either returns the page or puts the result into the free list.
func (f *Family) release(b *block) {
	p := b.page
	b.free = true
	b.requested = 0

	// take back slack left by a split that could not hold a header
	if b.next == nil {
		b.size = uint32(len(p.mem)) - b.dataOff()
	} else {
		b.size = b.next.off - b.dataOff()
	}
	b.sync()

	if next := b.next; next != nil && next.free {
		f.merge(b, next)
	}
	if prev := b.prev; prev != nil && prev.free {
		// prev changes size, so it has to be reinserted
		plist.Remove(&prev.node)
		f.merge(prev, b)
		b = prev
	}

	if p.empty() {
		f.a.releasePage(p)
		return
	}
	f.free.PriorityInsert(&b.node, bySizeDesc)
}
