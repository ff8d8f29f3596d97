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

// BlockInfo describes one block of a page.
type BlockInfo struct {
	Offset    int // header offset from the page start
	Size      int // data bytes
	Requested int // bytes asked for by Alloc, 0 if free
	Free      bool
}

// PageInfo describes one data page of a family.
type PageInfo struct {
	Base     uintptr
	Units    int
	Capacity int // bytes available for blocks and their headers
	Blocks   []BlockInfo
}

// Usage holds the block counters of a family.
type Usage struct {
	Family      string
	ElementSize int
	Pages       int

	TotalBlocks    int
	FreeBlocks     int
	OccupiedBlocks int

	// AppMemUsage is the bytes held by allocated blocks, headers included.
	AppMemUsage int
	// FreeBytes is the data bytes of all free blocks.
	FreeBytes int
}

func (b *block) info() BlockInfo {
	return BlockInfo{
		Offset:    int(b.off),
		Size:      int(b.size),
		Requested: int(b.requested),
		Free:      b.free,
	}
}

func (p *page) info() PageInfo {
	pi := PageInfo{
		Base:     p.base,
		Units:    p.units,
		Capacity: len(p.mem) - pageHeaderSize,
	}
	for b := p.first; b != nil; b = b.next {
		pi.Blocks = append(pi.Blocks, b.info())
	}
	return pi
}

// Pages returns the data pages of the family, newest first.
// Blocks of each page are in address order.
func (f *Family) Pages() []PageInfo {
	ret := make([]PageInfo, 0, f.npages)
	for p := f.pages; p != nil; p = p.next {
		ret = append(ret, p.info())
	}
	return ret
}

// FreeBlocks returns the free list of the family, biggest first.
func (f *Family) FreeBlocks() []BlockInfo {
	var ret []BlockInfo
	f.free.Each(func(b *block) bool {
		ret = append(ret, b.info())
		return true
	})
	return ret
}

// Usage returns the block counters of the family.
func (f *Family) Usage() Usage {
	u := Usage{
		Family:      f.name,
		ElementSize: f.size,
		Pages:       f.npages,
	}
	for p := f.pages; p != nil; p = p.next {
		for b := p.first; b != nil; b = b.next {
			u.TotalBlocks++
			if b.free {
				u.FreeBlocks++
				u.FreeBytes += int(b.size)
			} else {
				u.OccupiedBlocks++
				u.AppMemUsage += int(b.size) + blockHeaderSize
			}
		}
	}
	return u
}

// Usage returns the counters of every family in registry order.
func (a *Allocator) Usage() []Usage {
	ff := a.Families()
	ret := make([]Usage, 0, len(ff))
	for _, f := range ff {
		ret = append(ret, f.Usage())
	}
	return ret
}
