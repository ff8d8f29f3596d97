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

// Package vmpage acquires and releases whole zero-filled memory pages.
//
// Pages come either straight from the operating system (anonymous mmap) or
// from the Go heap. Memory returned by a Source never moves, so callers may
// keep raw addresses into it until it's released.
package vmpage

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidUnits is returned when asking for less than one page.
	ErrInvalidUnits = errors.New("vmpage: units must be greater than zero")

	// ErrExhausted is returned when a Source can not hand out more pages.
	ErrExhausted = errors.New("vmpage: out of pages")
)

// Source hands out memory in units of PageSize bytes.
type Source interface {
	// PageSize returns the size of one unit in bytes. It never changes.
	PageSize() int

	// Acquire returns units*PageSize() contiguous zero-filled bytes.
	Acquire(units int) ([]byte, error)

	// Release gives back memory returned by Acquire.
	// mem must be the exact slice returned by Acquire.
	Release(mem []byte) error
}

// Units returns how many pages of pageSize bytes are needed for n bytes.
func Units(n, pageSize int) int {
	return (n + pageSize - 1) / pageSize
}
