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

// Package printer writes human readable reports of an allocator's families,
// pages and blocks. It only reads allocator state.
package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/cloudwego/pagealloc/unsafex/malloc"
)

// Printer writes reports to W.
type Printer struct {
	W io.Writer

	// NoColor disables ANSI colors even if W is a terminal.
	NoColor bool

	family lipgloss.Style
	total  lipgloss.Style
}

// New returns a Printer writing to w.
func New(w io.Writer, noColor bool) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		W:       w,
		NoColor: noColor,
		family:  r.NewStyle().Foreground(lipgloss.Color("2")),
		total:   r.NewStyle().Foreground(lipgloss.Color("5")),
	}
}

func (p *Printer) paint(s lipgloss.Style, str string) string {
	if p.NoColor {
		return str
	}
	return s.Render(str)
}

// errWriter keeps the first write error and skips everything after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Families lists the registered families in registry order.
func (p *Printer) Families(a *malloc.Allocator) error {
	w := &errWriter{w: p.W}
	ff := a.Families()
	if len(ff) == 0 {
		w.printf("No page families registered.\n")
		return w.err
	}
	for _, f := range ff {
		w.printf("Page Family: %s, Size: %d\n", f.Name(), f.Size())
	}
	return w.err
}

// MemoryUsage dumps every page of every family with its blocks.
// If filter is not empty only the family with that name is printed.
func (p *Printer) MemoryUsage(a *malloc.Allocator, filter string) error {
	w := &errWriter{w: p.W}
	w.printf("\nPage Size = %d Bytes\n", a.DataPageSize())

	pages := 0
	for _, f := range a.Families() {
		if filter != "" && f.Name() != filter {
			continue
		}
		w.printf("%s\n", p.paint(p.family,
			fmt.Sprintf("vm_page_family : %s, struct size = %d", f.Name(), f.Size())))
		for _, pi := range f.Pages() {
			pages++
			w.printf("\t\t base = %#x, units = %d, capacity = %d\n", pi.Base, pi.Units, pi.Capacity)
			for i, b := range pi.Blocks {
				state := "ALLOCATED"
				if b.Free {
					state = "F R E E D"
				}
				w.printf("\t\t\t%#-14x Block %-3d %s  block_size = %-6d  offset = %-6d  requested = %d\n",
					pi.Base+uintptr(b.Offset), i, state, b.Size, b.Offset, b.Requested)
			}
		}
		w.printf("\n")
	}

	used := pages * a.DataPageSize()
	w.printf("%s\n", p.paint(p.total,
		fmt.Sprintf("# Of VM Pages in Use : %d (%d Bytes)", pages, used)))
	w.printf("Total Memory being used by Memory Manager = %d Bytes\n",
		used+a.DirectoryPages()*a.PageSize())
	return w.err
}

// BlockUsage prints the block counters of each family.
func (p *Printer) BlockUsage(a *malloc.Allocator) error {
	w := &errWriter{w: p.W}
	for _, u := range a.Usage() {
		w.printf("%-20s   TBC : %-4d    FBC : %-4d    OBC : %-4d AppMemUsage : %d\n",
			u.Family, u.TotalBlocks, u.FreeBlocks, u.OccupiedBlocks, u.AppMemUsage)
	}
	return w.err
}
