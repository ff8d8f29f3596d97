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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cloudwego/pagealloc/internal/logger"
	"github.com/cloudwego/pagealloc/unsafex/malloc"
	"github.com/cloudwego/pagealloc/unsafex/vmpage"
)

var (
	// Global flags
	sourceName string
	pageSize   int
	maxPages   int
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "mmdemo",
	Short: "Exercise the type-aware page allocator",
	Long: `mmdemo registers a few element families with the page allocator,
allocates and frees them in fixed scenarios and prints the registered
families, the page and block layout and the block counters after each step.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceName, "source", "mmap",
		"Page source: mmap (heap where mmap is unavailable), or heap")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", vmpage.DefaultHeapPageSize,
		"Page size of the heap source, mmap uses the OS page size")
	rootCmd.PersistentFlags().IntVar(&maxPages, "max-pages", 0,
		"Fail page acquisition beyond this many pages (0 = unlimited)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log page and family events")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSource() (vmpage.Source, error) {
	var src vmpage.Source
	switch sourceName {
	case "heap":
		if pageSize <= 0 {
			return nil, errors.Errorf("invalid page size %d", pageSize)
		}
		src = vmpage.NewHeap(pageSize)
	case "mmap":
		if rootCmd.PersistentFlags().Changed("page-size") {
			return nil, errors.New("--page-size only applies to --source heap")
		}
		src = vmpage.New()
	default:
		return nil, errors.Errorf("unknown page source %q", sourceName)
	}
	if maxPages > 0 {
		src = vmpage.WithLimit(src, maxPages)
	}
	return src, nil
}

// newAllocator builds an allocator from the global flags. Logs go to logOut.
func newAllocator(logOut io.Writer) (*malloc.Allocator, error) {
	src, err := newSource()
	if err != nil {
		return nil, err
	}
	level := logrus.WarnLevel
	if verbose {
		level = logrus.DebugLevel
	}
	opts := malloc.DefaultOptions()
	opts.Source = src
	opts.Logger = logger.New(logOut, level)
	return malloc.New(opts)
}
