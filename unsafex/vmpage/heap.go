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

package vmpage

import (
	"github.com/bytedance/gopkg/lang/mcache"
	"github.com/pkg/errors"

	"github.com/cloudwego/pagealloc/unsafex"
)

// DefaultHeapPageSize is the page size used by NewHeap if none is given.
const DefaultHeapPageSize = 4 << 10

type heapSource struct {
	pageSize int
}

// NewHeap returns a Source backed by the Go heap.
//
// It's mainly for platforms without mmap and for tests which need a fixed
// page size. Buffers are recycled through mcache.
func NewHeap(pageSize int) Source {
	if pageSize <= 0 {
		pageSize = DefaultHeapPageSize
	}
	return &heapSource{pageSize: pageSize}
}

func (s *heapSource) PageSize() int { return s.pageSize }

func (s *heapSource) Acquire(units int) ([]byte, error) {
	if units <= 0 {
		return nil, errors.Wrapf(ErrInvalidUnits, "acquire %d units", units)
	}
	b := mcache.Malloc(units * s.pageSize)
	// buffers from mcache may be dirty
	unsafex.Zero(b)
	return b, nil
}

func (s *heapSource) Release(mem []byte) error {
	if len(mem) == 0 || len(mem)%s.pageSize != 0 {
		return errors.Errorf("vmpage: release of %d bytes is not page aligned", len(mem))
	}
	mcache.Free(mem)
	return nil
}
