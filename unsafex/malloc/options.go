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

import (
	"github.com/sirupsen/logrus"

	"github.com/cloudwego/pagealloc/internal/logger"
	"github.com/cloudwego/pagealloc/unsafex/malloc/typesize"
	"github.com/cloudwego/pagealloc/unsafex/vmpage"
)

// Resolver maps an allocation descriptor to the name of the family it
// allocates from.
//
// size is the element size to register the family with if it does not exist
// yet. It's 0 if the family must already be registered.
type Resolver func(desc string) (name string, size int)

// Options configures an Allocator. Zero fields take their default.
type Options struct {
	// Source provides the pages. Default: vmpage.New()
	Source vmpage.Source

	// Logger receives page and registry events. Default: logger.L
	Logger logrus.FieldLogger

	// Resolver is used by Calloc. Default: typesize.Family
	Resolver Resolver

	// DataPageUnits is the number of Source pages making up one data page.
	// Default: 1
	DataPageUnits int
}

// DefaultOptions returns the default values of Options.
func DefaultOptions() *Options {
	return &Options{
		Source:        vmpage.New(),
		Logger:        logger.L,
		Resolver:      typesize.Family,
		DataPageUnits: 1,
	}
}

func (o *Options) withDefaults() *Options {
	ret := Options{}
	if o != nil {
		ret = *o
	}
	if ret.Source == nil {
		ret.Source = vmpage.New()
	}
	if ret.Logger == nil {
		ret.Logger = logger.L
	}
	if ret.Resolver == nil {
		ret.Resolver = typesize.Family
	}
	if ret.DataPageUnits <= 0 {
		ret.DataPageUnits = 1
	}
	return &ret
}
