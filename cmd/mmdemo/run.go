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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cloudwego/pagealloc/unsafex/malloc"
	"github.com/cloudwego/pagealloc/unsafex/malloc/printer"
)

var runFamily string

func init() {
	cmd := newRunCmd()
	cmd.Flags().StringVar(&runFamily, "family", "", "Only dump the pages of this family")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the allocate and free scenarios",
		Long: `The run command registers emp_t (36 bytes) and student_t (64 bytes),
then runs three scenarios:

  1. allocate 20 ints, 30 and 60 emp_t, and two student_t
  2. free the ints, the 60 emp_t and the second student_t
  3. free the rest

Memory and block usage are printed after each scenario.

Example:
  mmdemo run
  mmdemo run --source mmap --family emp_t`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

type allocation struct {
	desc  string
	units int
}

func runScenarios(out, logOut io.Writer) error {
	a, err := newAllocator(logOut)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err = a.Register("emp_t", 36); err != nil {
		return err
	}
	if _, err = a.Register("student_t", 64); err != nil {
		return err
	}
	p := printer.New(out, noColor)
	if err = p.Families(a); err != nil {
		return err
	}

	allocs := []allocation{
		{"sizeof(int)", 20},
		{"emp_t", 30},
		{"emp_t", 60},
		{"student_t", 1},
		{"student_t", 1},
	}
	bufs := make([][]byte, len(allocs))
	for i, al := range allocs {
		if bufs[i], err = a.Calloc(al.desc, al.units); err != nil {
			return errors.Wrapf(err, "allocate %d x %s", al.units, al.desc)
		}
	}

	// indexes into allocs freed before each report
	frees := [][]int{nil, {0, 2, 4}, {1, 3}}
	for i, free := range frees {
		for _, j := range free {
			a.Free(bufs[j])
			bufs[j] = nil
		}
		if err = report(p, a, out, i+1); err != nil {
			return err
		}
	}
	return a.Validate()
}

func report(p *printer.Printer, a *malloc.Allocator, out io.Writer, scenario int) error {
	if _, err := fmt.Fprintf(out, " \nSCENARIO %d : *********** \n", scenario); err != nil {
		return err
	}
	if err := p.MemoryUsage(a, runFamily); err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		return errors.Wrapf(err, "scenario %d", scenario)
	}
	return p.BlockUsage(a)
}
