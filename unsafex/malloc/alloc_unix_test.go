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

//go:build unix

package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/pagealloc/internal/logger"
	"github.com/cloudwego/pagealloc/unsafex/vmpage"
)

func TestAllocMmap(t *testing.T) {
	src := vmpage.WithLimit(vmpage.NewMmap(), 64)
	a, err := New(&Options{Source: src, Logger: logger.Discard()})
	require.NoError(t, err)
	defer a.Close()

	f := mustRegister(t, a, "emp_t", 36)
	maxAlloc := a.MaxAllocatable()
	assert.Equal(t, a.PageSize()-pageHeaderSize-blockHeaderSize, maxAlloc)

	var bufs [][]byte
	for i := 0; i < 200; i++ {
		b, err := a.Calloc("emp_t", 1+i%4)
		require.NoError(t, err)
		assert.Equal(t, make([]byte, len(b)), b)
		for j := range b {
			b[j] = byte(i)
		}
		bufs = append(bufs, b)
	}
	require.NoError(t, a.Validate())
	pages := f.PageCount()
	assert.Equal(t, pages+1, vmpage.InUse(src))

	for i := 0; i < len(bufs); i += 2 {
		a.Free(bufs[i])
	}
	require.NoError(t, a.Validate())
	for i := 1; i < len(bufs); i += 2 {
		assert.Equal(t, byte(i), bufs[i][0])
		a.Free(bufs[i])
	}
	require.NoError(t, a.Validate())
	assert.Equal(t, 0, f.PageCount())
	assert.Equal(t, 1, vmpage.InUse(src))

	require.NoError(t, a.Close())
	assert.Equal(t, 0, vmpage.InUse(src))
}
