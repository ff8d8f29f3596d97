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
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type mmapSource struct {
	pageSize int
}

// NewMmap returns a Source mapping anonymous private memory from the kernel.
// The page size is queried once here.
func NewMmap() Source {
	return &mmapSource{pageSize: unix.Getpagesize()}
}

// New returns the default Source of the platform, which is NewMmap.
func New() Source {
	return NewMmap()
}

func (s *mmapSource) PageSize() int { return s.pageSize }

func (s *mmapSource) Acquire(units int) ([]byte, error) {
	if units <= 0 {
		return nil, errors.Wrapf(ErrInvalidUnits, "acquire %d units", units)
	}
	// anonymous mappings are zero-filled by the kernel
	mem, err := unix.Mmap(-1, 0, units*s.pageSize,
		unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %d pages", units)
	}
	return mem, nil
}

func (s *mmapSource) Release(mem []byte) error {
	if err := unix.Munmap(mem); err != nil {
		return errors.Wrapf(err, "munmap %d bytes", len(mem))
	}
	return nil
}
