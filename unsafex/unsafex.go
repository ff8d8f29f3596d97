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

// Package unsafex holds the small unsafe helpers shared by the allocator packages.
package unsafex

import "unsafe"

// BinaryToString converts []byte to string without copy
func BinaryToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// CString returns the bytes of b up to the first NUL as a string, without copy.
// It's used for reading fixed size name fields.
func CString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return BinaryToString(b[:i])
		}
	}
	return BinaryToString(b)
}

// SliceAddr returns the address of the underlying array of b.
// It works for zero-length slices as well.
func SliceAddr(b []byte) uintptr {
	// for []byte, the Data ptr is always the 1st field
	return uintptr(*(*unsafe.Pointer)(unsafe.Pointer(&b)))
}

// Zero sets all bytes of b to 0.
func Zero(b []byte) {
	clear(b)
}
