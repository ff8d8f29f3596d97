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

// Package malloc implements a type-aware page allocator.
//
// Allocations are grouped into families. A family is a named type with a
// fixed element size, registered once with Register. Each family owns a chain
// of pages acquired from a vmpage.Source, and every page is carved into an
// address-ordered chain of blocks:
//
//	page: [page header][block header][data ...][block header][data ...] ...
//
// Free blocks of a family are kept in one list sorted by size, biggest first,
// so the largest free block is found in O(1). Alloc splits that block, or a
// fresh page if it's too small. Free merges the block with its free
// neighbors right away and returns the page to the Source once it's empty.
//
// The allocator is NOT goroutine-safe. Callers sharing an Allocator must
// serialize every call, eg. with one mutex wrapping all of them.
//
// Memory handed out lives outside the Go heap when using the mmap Source, so
// it must not hold Go pointers.
package malloc
