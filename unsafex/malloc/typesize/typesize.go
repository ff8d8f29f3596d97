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

// Package typesize resolves allocation descriptors to byte sizes.
//
// A descriptor is either "sizeof(<builtin type>)", a bare decimal literal
// (which stands for an int) or anything else, which is left to the caller to
// look up as a registered family name.
package typesize

import (
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MaxNameLen is the longest type name accepted inside sizeof(...).
const MaxNameLen = 49

// builtin sizes follow the LP64 data model.
var builtin = map[string]int{
	"int":                4,
	"char":               1,
	"float":              4,
	"double":             8,
	"short":              2,
	"long":               8,
	"long long":          8,
	"unsigned int":       4,
	"unsigned char":      1,
	"unsigned short":     2,
	"unsigned long":      8,
	"unsigned long long": 8,
}

// Size returns the size of a builtin type.
func Size(name string) (int, bool) {
	sz, ok := builtin[name]
	return sz, ok
}

// Names returns the builtin type names in ascending order.
func Names() []string {
	ret := maps.Keys(builtin)
	slices.Sort(ret)
	return ret
}

// Parse extracts the builtin type name a descriptor refers to.
//
// "sizeof(T)" yields T and a bare decimal literal yields "int".
// ok is false if desc is neither, in which case it should be treated as a
// family name.
func Parse(desc string) (name string, ok bool) {
	desc = strings.TrimSpace(desc)
	if inner, found := strings.CutPrefix(desc, "sizeof("); found {
		end := strings.IndexByte(inner, ')')
		if end <= 0 {
			return "", false
		}
		name = strings.Join(strings.Fields(inner[:end]), " ")
		if name == "" || len(name) > MaxNameLen {
			return "", false
		}
		return name, true
	}
	if _, err := strconv.ParseUint(desc, 10, 64); err == nil {
		return "int", true
	}
	return "", false
}

// Resolve maps a builtin descriptor to its type name and size.
// ok is false if desc is not a builtin descriptor or names an unknown type.
func Resolve(desc string) (name string, size int, ok bool) {
	name, ok = Parse(desc)
	if !ok {
		return "", 0, false
	}
	size, ok = Size(name)
	if !ok {
		return "", 0, false
	}
	return name, size, true
}

// Family maps a descriptor to the family name it allocates from.
//
// size is the element size to register the family with on first use, or 0
// if desc does not denote a builtin type and the family must already exist.
func Family(desc string) (name string, size int) {
	if name, size, ok := Resolve(desc); ok {
		return name, size
	}
	if name, ok := Parse(desc); ok {
		// sizeof of an unknown type names a family
		return name, 0
	}
	return strings.TrimSpace(desc), 0
}
