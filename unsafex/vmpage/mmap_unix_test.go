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

package vmpage

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapSource(t *testing.T) {
	s := New()
	require.Equal(t, os.Getpagesize(), s.PageSize())

	mem, err := s.Acquire(2)
	require.NoError(t, err)
	require.Len(t, mem, 2*s.PageSize())
	assert.Equal(t, byte(0), mem[0])
	assert.Equal(t, byte(0), mem[len(mem)-1])

	// writable
	mem[0] = 1
	mem[len(mem)-1] = 1

	require.NoError(t, s.Release(mem))

	_, err = s.Acquire(0)
	assert.Equal(t, ErrInvalidUnits, errors.Cause(err))
}
