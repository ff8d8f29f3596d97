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
	"unsafe"

	"github.com/pkg/errors"

	"github.com/cloudwego/pagealloc/unsafex"
)

// Alloc allocates n zeroed bytes from family f.
//
// The returned slice has len n. Its cap is the size of the block, which is
// larger than n if the rest of the block was too small to be split off.
// Do not reslice it before passing it to Free.
func (a *Allocator) Alloc(f *Family, n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "alloc %d bytes of %s", n, f.name)
	}
	if n > a.MaxAllocatable() {
		return nil, errors.Wrapf(ErrRequestTooLarge, "alloc %d bytes of %s, max %d",
			n, f.name, a.MaxAllocatable())
	}

	b := f.biggest()
	if b == nil || b.size < uint32(n) {
		p, err := a.newPage(f)
		if err != nil {
			return nil, err
		}
		b = p.first
	}
	f.split(b, uint32(n))

	data := b.page.mem[b.dataOff():b.end():b.end()]
	unsafex.Zero(data)
	return data[:n], nil
}

// Calloc allocates units zeroed elements of the type named by desc.
//
// desc is resolved by Options.Resolver. With the default resolver it's either
// a registered family name, "sizeof(<builtin type>)" or a decimal literal
// standing for an int. Builtin families are registered on first use.
func (a *Allocator) Calloc(desc string, units int) ([]byte, error) {
	if units <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "calloc %d units of %s", units, desc)
	}
	name, size := a.resolve(desc)
	f := a.Lookup(name)
	if f == nil {
		if size <= 0 {
			return nil, errors.Wrapf(ErrUnknownType, "%q", desc)
		}
		var err error
		if f, err = a.Register(name, size); err != nil {
			return nil, err
		}
	}
	if units > a.MaxAllocatable()/f.size {
		return nil, errors.Wrapf(ErrRequestTooLarge, "calloc %d units of %s, max %d bytes",
			units, f.name, a.MaxAllocatable())
	}
	return a.Alloc(f, units*f.size)
}

// Free returns memory allocated by Alloc or Calloc.
// Freeing a nil or zero-cap slice is a no-op.
//
// It panics on double free and on slices not allocated by a.
func (a *Allocator) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	a.FreePointer(unsafe.Pointer(unsafe.SliceData(b)))
}

// FreePointer is like Free, taking the address of the first allocated byte.
// Freeing nil is a no-op.
func (a *Allocator) FreePointer(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	b := a.blockOf(uintptr(ptr))
	if b.free {
		panic("malloc: double free")
	}
	b.page.family.release(b)
}

// BlockSize returns the size of the block b was allocated in,
// and the size originally requested for it.
// It panics under the same conditions as Free.
func (a *Allocator) BlockSize(b []byte) (size, requested int) {
	blk := a.blockOf(uintptr(unsafe.Pointer(unsafe.SliceData(b))))
	if blk.free {
		panic("malloc: block is free")
	}
	return int(blk.size), int(blk.requested)
}

// blockOf returns the block whose data starts at addr.
// The page is found before any memory is read, so foreign pointers panic
// without being dereferenced.
func (a *Allocator) blockOf(addr uintptr) *block {
	p := a.pageOf(addr)
	if p == nil {
		panic("malloc: pointer not owned by allocator")
	}
	off := addr - p.base
	if off < pageHeaderSize+blockHeaderSize {
		panic("malloc: invalid pointer")
	}
	b := p.blocks[uint32(off-blockHeaderSize)]
	if b == nil {
		panic("malloc: invalid pointer")
	}
	b.verify()
	return b
}
