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

import "encoding/binary"

// Data page layout. All fields are little endian.
//
//	page header:  [4 magic][4 units][4 family id][4 reserved]
//	block header: [4 magic][4 state][4 size][4 offset][4 prev offset][4 next offset]
//
// offsets are relative to the page start, 0 means none.
const (
	pageHeaderSize  = 16
	blockHeaderSize = 24

	pageMagic  uint32 = 0x9A6E5EED
	blockMagic uint32 = 0xB10C0BED

	stateAllocated uint32 = 1
	stateFree      uint32 = 2
)

// Directory page layout.
//
//	[8 next directory page address][record 0][record 1] ...
//	record: [32 name][4 element size][4 reserved][8 name hash]
const (
	dirHeaderSize    = 8
	familyRecordSize = 48

	// MaxNameLen is the longest family name that can be registered.
	MaxNameLen = 32

	recSizeOff = MaxNameLen
	recHashOff = MaxNameLen + 8
)

var le = binary.LittleEndian

func writePageHeader(mem []byte, units int, familyID uint32) {
	le.PutUint32(mem[0:], pageMagic)
	le.PutUint32(mem[4:], uint32(units))
	le.PutUint32(mem[8:], familyID)
}

func (b *block) sync() {
	h := b.page.mem[b.off : b.off+blockHeaderSize]
	state := stateAllocated
	if b.free {
		state = stateFree
	}
	var prev, next uint32
	if b.prev != nil {
		prev = b.prev.off
	}
	if b.next != nil {
		next = b.next.off
	}
	le.PutUint32(h[0:], blockMagic)
	le.PutUint32(h[4:], state)
	le.PutUint32(h[8:], b.size)
	le.PutUint32(h[12:], b.off)
	le.PutUint32(h[16:], prev)
	le.PutUint32(h[20:], next)
}

// erase invalidates the header of a block merged into its neighbor.
func (b *block) erase() {
	le.PutUint32(b.page.mem[b.off:], 0)
}

// verify panics if the header bytes don't describe b.
func (b *block) verify() {
	h := b.page.mem[b.off : b.off+blockHeaderSize]
	if le.Uint32(h[0:]) != blockMagic || le.Uint32(h[12:]) != b.off {
		panic("malloc: corrupted block header")
	}
	state := stateAllocated
	if b.free {
		state = stateFree
	}
	if le.Uint32(h[4:]) != state || le.Uint32(h[8:]) != b.size {
		panic("malloc: corrupted block header")
	}
}
