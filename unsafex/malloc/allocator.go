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
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/cloudwego/pagealloc/unsafex"
	"github.com/cloudwego/pagealloc/unsafex/vmpage"
)

// Allocator is the allocator context. It owns the family registry and every
// page acquired for it.
type Allocator struct {
	src     vmpage.Source
	log     logrus.FieldLogger
	resolve Resolver

	pageSize int // Source page size, cached at New
	units    int // Source pages per data page
	dirCap   int // family records per directory page

	dirs      *dirPage // newest first
	ndirs     int
	nfamilies int

	// data pages of all families sorted by address, for resolving pointers.
	pages []*page
}

// New creates an Allocator. It queries the page size of the Source once.
func New(o *Options) (*Allocator, error) {
	o = o.withDefaults()
	a := &Allocator{
		src:      o.Source,
		log:      o.Logger,
		resolve:  o.Resolver,
		pageSize: o.Source.PageSize(),
		units:    o.DataPageUnits,
	}
	a.dirCap = (a.pageSize - dirHeaderSize) / familyRecordSize
	if a.dirCap <= 0 {
		return nil, errors.Errorf("page size %d can not hold a family record", a.pageSize)
	}
	if sz := a.DataPageSize(); uint64(sz) > math.MaxUint32 {
		return nil, errors.Errorf("data page size %d overflows block offsets", sz)
	}
	if a.MaxAllocatable() <= 0 {
		return nil, errors.Errorf("data page size %d can not hold a block", a.DataPageSize())
	}
	return a, nil
}

// PageSize returns the page size of the Source.
func (a *Allocator) PageSize() int { return a.pageSize }

// DataPageSize returns the size of one data page in bytes.
func (a *Allocator) DataPageSize() int { return a.pageSize * a.units }

// MaxAllocatable returns the largest request a single data page can serve.
func (a *Allocator) MaxAllocatable() int {
	return a.DataPageSize() - pageHeaderSize - blockHeaderSize
}

// DirectoryPages returns the number of pages held by the family registry.
func (a *Allocator) DirectoryPages() int { return a.ndirs }

// DataPages returns the number of data pages held by all families.
func (a *Allocator) DataPages() int { return len(a.pages) }

// Close returns every page to the Source. The Allocator must not be used after.
func (a *Allocator) Close() error {
	var firstErr error
	for _, p := range a.pages {
		if err := a.src.Release(p.mem); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.pages = nil
	for d := a.dirs; d != nil; d = d.next {
		for _, f := range d.families {
			f.pages = nil
			f.npages = 0
			f.free.Init()
		}
		if err := a.src.Release(d.mem); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.dirs = nil
	a.ndirs = 0
	a.nfamilies = 0
	return firstErr
}

func cmpPageAddr(p *page, addr uintptr) int {
	switch {
	case p.base < addr:
		return -1
	case p.base > addr:
		return 1
	}
	return 0
}

// pageOf returns the data page containing addr, or nil.
func (a *Allocator) pageOf(addr uintptr) *page {
	i, found := slices.BinarySearchFunc(a.pages, addr, cmpPageAddr)
	if found {
		return a.pages[i]
	}
	if i == 0 {
		return nil
	}
	p := a.pages[i-1]
	if addr-p.base < uintptr(len(p.mem)) {
		return p
	}
	return nil
}

// newPage acquires a data page for f, formats it as a single free block and
// makes it the head of the family's page chain.
func (a *Allocator) newPage(f *Family) (*page, error) {
	mem, err := a.src.Acquire(a.units)
	if err != nil {
		return nil, errors.Wrapf(ErrAllocationFailed, "new page for %s: %v", f.name, err)
	}
	p := &page{
		family: f,
		mem:    mem,
		base:   unsafex.SliceAddr(mem),
		units:  a.units,
		blocks: make(map[uint32]*block),
	}
	writePageHeader(mem, a.units, f.id)

	b := &block{
		page: p,
		off:  pageHeaderSize,
		size: uint32(len(mem) - pageHeaderSize - blockHeaderSize),
		free: true,
	}
	b.node.Init(b)
	b.sync()
	p.first = b
	p.blocks[b.off] = b

	p.next = f.pages
	if f.pages != nil {
		f.pages.prev = p
	}
	f.pages = p
	f.npages++

	i, _ := slices.BinarySearchFunc(a.pages, p.base, cmpPageAddr)
	a.pages = slices.Insert(a.pages, i, p)

	f.free.PriorityInsert(&b.node, bySizeDesc)

	a.log.WithFields(logrus.Fields{
		"family": f.name,
		"page":   fmt.Sprintf("%#x", p.base),
		"pages":  f.npages,
	}).Debug("page acquired")
	return p, nil
}

// releasePage unlinks an empty page from its family and gives it back to the
// Source. A failed release is logged and otherwise ignored.
func (a *Allocator) releasePage(p *page) {
	f := p.family
	if f.pages == p {
		f.pages = p.next
	}
	if p.prev != nil {
		p.prev.next = p.next
	}
	if p.next != nil {
		p.next.prev = p.prev
	}
	p.prev, p.next = nil, nil
	f.npages--

	if i, found := slices.BinarySearchFunc(a.pages, p.base, cmpPageAddr); found {
		a.pages = slices.Delete(a.pages, i, i+1)
	}

	entry := a.log.WithFields(logrus.Fields{
		"family": f.name,
		"page":   fmt.Sprintf("%#x", p.base),
		"units":  p.units,
	})
	if err := a.src.Release(p.mem); err != nil {
		entry.WithError(err).Warn("failed to release page")
	} else {
		entry.Debug("page released")
	}
	p.mem = nil
	p.first = nil
	p.blocks = nil
}
