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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapAcquireRelease(t *testing.T) {
	s := NewHeap(4096)
	require.Equal(t, 4096, s.PageSize())

	for _, units := range []int{1, 1, 2, 2} {
		mem, err := s.Acquire(units)
		require.NoError(t, err)
		require.Len(t, mem, units*4096)
		for i := range mem {
			if mem[i] != 0 {
				t.Fatalf("byte %d of %d units is not zero", i, units)
			}
		}
		// dirty it so the next round checks zeroing of recycled buffers
		for i := range mem {
			mem[i] = 0xFF
		}
		require.NoError(t, s.Release(mem))
	}
}

func TestHeapInvalid(t *testing.T) {
	s := NewHeap(0)
	assert.Equal(t, DefaultHeapPageSize, s.PageSize())

	_, err := s.Acquire(0)
	assert.Equal(t, ErrInvalidUnits, errors.Cause(err))
	_, err = s.Acquire(-1)
	assert.Equal(t, ErrInvalidUnits, errors.Cause(err))

	assert.Error(t, s.Release(nil))
	assert.Error(t, s.Release(make([]byte, 100)))
}

func TestWithLimit(t *testing.T) {
	s := WithLimit(NewHeap(1024), 3)
	assert.Equal(t, 1024, s.PageSize())
	assert.Equal(t, 0, InUse(s))
	assert.Equal(t, -1, InUse(NewHeap(1024)))

	a, err := s.Acquire(2)
	require.NoError(t, err)
	b, err := s.Acquire(1)
	require.NoError(t, err)
	assert.Equal(t, 3, InUse(s))

	_, err = s.Acquire(1)
	assert.Equal(t, ErrExhausted, errors.Cause(err))

	require.NoError(t, s.Release(a))
	assert.Equal(t, 1, InUse(s))
	c, err := s.Acquire(2)
	require.NoError(t, err)

	require.NoError(t, s.Release(b))
	require.NoError(t, s.Release(c))
	assert.Equal(t, 0, InUse(s))
}

func TestUnits(t *testing.T) {
	assert.Equal(t, 0, Units(0, 4096))
	assert.Equal(t, 1, Units(1, 4096))
	assert.Equal(t, 1, Units(4096, 4096))
	assert.Equal(t, 2, Units(4097, 4096))
}
