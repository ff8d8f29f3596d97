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

	"github.com/bytedance/gopkg/util/xxhash3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cloudwego/pagealloc/container/plist"
	"github.com/cloudwego/pagealloc/unsafex"
)

// Family is a registered type. All allocations of a family come from pages
// owned by it.
type Family struct {
	a    *Allocator
	id   uint32
	name string
	size int

	// rec is the record of the family in its directory page.
	rec []byte

	pages  *page // newest first
	npages int

	// free blocks of all pages, biggest first.
	free plist.List[*block]
}

// Name returns the name the family was registered with.
func (f *Family) Name() string { return f.name }

// Size returns the element size of the family.
func (f *Family) Size() int { return f.size }

// PageCount returns the number of data pages owned by the family.
func (f *Family) PageCount() int { return f.npages }

// biggest returns the largest free block of the family, or nil.
func (f *Family) biggest() *block {
	if n := f.free.Front(); n != nil {
		return n.Owner()
	}
	return nil
}

// dirPage is a page of the family registry. Registry pages form a singly
// linked chain, newest first.
type dirPage struct {
	mem      []byte
	families []*Family
	next     *dirPage
}

func (d *dirPage) record(i int) []byte {
	off := dirHeaderSize + i*familyRecordSize
	return d.mem[off : off+familyRecordSize]
}

// Register creates the family name with the given element size.
//
// It panics if name is empty or longer than MaxNameLen, if size is not
// positive or does not fit in a data page, or if name is already registered.
// An error is returned only if the registry needs a page and the Source has none.
func (a *Allocator) Register(name string, size int) (*Family, error) {
	if name == "" || len(name) > MaxNameLen {
		panic(fmt.Sprintf("malloc: invalid family name %q", name))
	}
	if size <= 0 {
		panic(fmt.Sprintf("malloc: invalid element size %d of %s", size, name))
	}
	if size > a.MaxAllocatable() {
		panic(fmt.Sprintf("malloc: element size %d of %s exceeds page capacity %d",
			size, name, a.MaxAllocatable()))
	}
	if a.Lookup(name) != nil {
		panic(fmt.Sprintf("malloc: family %s already registered", name))
	}

	d := a.dirs
	if d == nil || len(d.families) == a.dirCap {
		mem, err := a.src.Acquire(1)
		if err != nil {
			return nil, errors.Wrapf(ErrAllocationFailed, "registry page for %s: %v", name, err)
		}
		d = &dirPage{mem: mem, next: a.dirs}
		if d.next != nil {
			le.PutUint64(mem[0:], uint64(unsafex.SliceAddr(d.next.mem)))
		}
		d.families = make([]*Family, 0, a.dirCap)
		a.dirs = d
		a.ndirs++
	}

	rec := d.record(len(d.families))
	copy(rec[:MaxNameLen], name)
	le.PutUint32(rec[recSizeOff:], uint32(size))
	le.PutUint64(rec[recHashOff:], xxhash3.HashString(name))

	f := &Family{
		a:    a,
		id:   uint32(a.nfamilies),
		name: name,
		size: size,
		rec:  rec,
	}
	d.families = append(d.families, f)
	a.nfamilies++

	a.log.WithFields(logrus.Fields{
		"family": name,
		"size":   size,
	}).Debug("family registered")
	return f, nil
}

// Lookup returns the family registered as name, or nil.
// Registry pages are scanned newest first.
func (a *Allocator) Lookup(name string) *Family {
	if name == "" || len(name) > MaxNameLen {
		return nil
	}
	h := xxhash3.HashString(name)
	for d := a.dirs; d != nil; d = d.next {
		for i, f := range d.families {
			rec := d.record(i)
			if le.Uint64(rec[recHashOff:]) != h {
				continue
			}
			if unsafex.CString(rec[:MaxNameLen]) == name {
				return f
			}
		}
	}
	return nil
}

// Families returns all registered families in registry order:
// newest registry page first, and in registration order within a page.
func (a *Allocator) Families() []*Family {
	ret := make([]*Family, 0, a.nfamilies)
	for d := a.dirs; d != nil; d = d.next {
		ret = append(ret, d.families...)
	}
	return ret
}
