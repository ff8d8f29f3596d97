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

import "github.com/pkg/errors"

var (
	// ErrAllocationFailed is returned when the page Source can not provide a page.
	ErrAllocationFailed = errors.New("malloc: page allocation failed")

	// ErrRequestTooLarge is returned when a request does not fit in one page.
	ErrRequestTooLarge = errors.New("malloc: request exceeds page capacity")

	// ErrUnknownType is returned when a descriptor names no registered family
	// and no builtin type.
	ErrUnknownType = errors.New("malloc: type not registered")

	// ErrInvalidSize is returned for requests of zero or negative size.
	ErrInvalidSize = errors.New("malloc: invalid size")
)
