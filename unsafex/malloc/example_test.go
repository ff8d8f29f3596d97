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
	"fmt"

	"github.com/cloudwego/pagealloc/unsafex/vmpage"
)

func Example() {
	a, _ := New(&Options{Source: vmpage.NewHeap(4096)})
	defer a.Close()

	emp, _ := a.Register("emp_t", 36)

	b1, _ := a.Alloc(emp, 36)     // one emp_t
	b2, _ := a.Calloc("emp_t", 3) // three more
	b3, _ := a.Alloc(emp, 3848)   // 16 bytes left, too small for a header

	fmt.Printf("b1: len=%d cap=%d\n", len(b1), cap(b1))
	fmt.Printf("b2: len=%d cap=%d\n", len(b2), cap(b2))
	fmt.Printf("b3: len=%d cap=%d\n", len(b3), cap(b3))
	fmt.Printf("pages: %d\n", emp.PageCount())

	a.Free(b1)
	a.Free(b2)
	a.Free(b3)
	fmt.Printf("pages: %d\n", emp.PageCount())

	// Output:
	// b1: len=36 cap=36
	// b2: len=108 cap=108
	// b3: len=3848 cap=3864
	// pages: 1
	// pages: 0
}
