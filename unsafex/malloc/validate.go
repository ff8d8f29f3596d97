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

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/cloudwego/pagealloc/unsafex"
)

// Validate checks the bookkeeping of every family:
//
//   - blocks of a page are contiguous and their sizes plus headers add up to
//     the page capacity
//   - no two free blocks are adjacent
//   - a block is in the free list if and only if it's free
//   - the free list is sorted by size, biggest first
//   - header bytes and the registry records match
//
// It never modifies the allocator.
func (a *Allocator) Validate() error {
	npages := 0
	for _, f := range a.Families() {
		if err := a.validateFamily(f); err != nil {
			return errors.Wrapf(err, "family %s", f.name)
		}
		npages += f.npages
	}
	if npages != len(a.pages) {
		return errors.Errorf("%d pages in families, %d in index", npages, len(a.pages))
	}
	if !slices.IsSortedFunc(a.pages, func(x, y *page) int { return cmpPageAddr(x, y.base) }) {
		return errors.New("page index not sorted")
	}
	return nil
}

func (a *Allocator) validateFamily(f *Family) error {
	if unsafex.CString(f.rec[:MaxNameLen]) != f.name || int(le.Uint32(f.rec[recSizeOff:])) != f.size {
		return errors.New("registry record mismatch")
	}

	nfree := 0
	n := 0
	var prev *page
	for p := f.pages; p != nil; p = p.next {
		n++
		if p.family != f || p.prev != prev {
			return errors.Errorf("page %#x: broken chain", p.base)
		}
		if a.pageOf(p.base) != p {
			return errors.Errorf("page %#x: not indexed", p.base)
		}
		c, err := validatePage(p)
		if err != nil {
			return errors.Wrapf(err, "page %#x", p.base)
		}
		nfree += c
		prev = p
	}
	if n != f.npages {
		return errors.Errorf("%d pages linked, %d counted", n, f.npages)
	}

	var last *block
	var err error
	f.free.Each(func(b *block) bool {
		switch {
		case !b.free:
			err = errors.Errorf("allocated block at %d in free list", b.off)
		case b.page.family != f:
			err = errors.Errorf("block at %d of another family in free list", b.off)
		case last != nil && last.size < b.size:
			err = errors.Errorf("free list out of order: %d before %d", last.size, b.size)
		}
		last = b
		return err == nil
	})
	if err != nil {
		return err
	}
	if n := f.free.Len(); n != nfree {
		return errors.Errorf("%d free blocks, %d in free list", nfree, n)
	}
	return nil
}

// validatePage checks the block chain of p and returns its free block count.
func validatePage(p *page) (int, error) {
	if le.Uint32(p.mem[0:]) != pageMagic {
		return 0, errors.New("bad page header")
	}
	if p.first == nil || p.first.off != pageHeaderSize || p.first.prev != nil {
		return 0, errors.New("bad first block")
	}
	nfree := 0
	nblocks := 0
	total := 0
	for b := p.first; b != nil; b = b.next {
		nblocks++
		total += int(b.size) + blockHeaderSize
		if p.blocks[b.off] != b || b.page != p {
			return 0, errors.Errorf("block at %d not indexed", b.off)
		}
		if h := le.Uint32(p.mem[b.off:]); h != blockMagic {
			return 0, errors.Errorf("block at %d: bad magic %#x", b.off, h)
		}
		if int(le.Uint32(p.mem[b.off+8:])) != int(b.size) {
			return 0, errors.Errorf("block at %d: header size mismatch", b.off)
		}
		if b.free != b.node.Linked() {
			return 0, errors.Errorf("block at %d: free=%v but linked=%v", b.off, b.free, b.node.Linked())
		}
		if b.free {
			nfree++
			if b.next != nil && b.next.free {
				return 0, errors.Errorf("adjacent free blocks at %d and %d", b.off, b.next.off)
			}
		} else if b.requested == 0 || b.requested > b.size {
			return 0, errors.Errorf("block at %d: requested %d of %d", b.off, b.requested, b.size)
		}
		if b.next != nil {
			if b.next.prev != b {
				return 0, errors.Errorf("block at %d: broken back link", b.next.off)
			}
			if b.end() != b.next.off {
				return 0, errors.Errorf("block at %d: ends at %d, next at %d", b.off, b.end(), b.next.off)
			}
		} else if int(b.end()) != len(p.mem) {
			return 0, errors.Errorf("last block ends at %d, page is %d", b.end(), len(p.mem))
		}
	}
	if nblocks != len(p.blocks) {
		return 0, errors.Errorf("%d blocks chained, %d indexed", nblocks, len(p.blocks))
	}
	if total != len(p.mem)-pageHeaderSize {
		return 0, errors.Errorf("blocks cover %d bytes, capacity %d", total, len(p.mem)-pageHeaderSize)
	}
	return nfree, nil
}
