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

import "github.com/pkg/errors"

type limitSource struct {
	Source

	max  int
	used int
}

// WithLimit caps the number of pages src may have outstanding at the same time.
// Acquire fails with ErrExhausted once the cap would be exceeded.
func WithLimit(src Source, maxPages int) Source {
	return &limitSource{Source: src, max: maxPages}
}

func (s *limitSource) Acquire(units int) ([]byte, error) {
	if units > 0 && s.used+units > s.max {
		return nil, errors.Wrapf(ErrExhausted, "%d of %d pages in use, want %d more", s.used, s.max, units)
	}
	mem, err := s.Source.Acquire(units)
	if err != nil {
		return nil, err
	}
	s.used += units
	return mem, nil
}

func (s *limitSource) Release(mem []byte) error {
	units := Units(len(mem), s.PageSize())
	if err := s.Source.Release(mem); err != nil {
		return err
	}
	s.used -= units
	return nil
}

// InUse returns the number of pages src currently has outstanding,
// or -1 if src is not a Source returned by WithLimit.
func InUse(src Source) int {
	if s, ok := src.(*limitSource); ok {
		return s.used
	}
	return -1
}
