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

	"github.com/spf13/cobra"

	"github.com/cloudwego/pagealloc/unsafex/malloc/typesize"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "sizes",
		Short: "List the builtin type sizes used by sizeof descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range typesize.Names() {
				size, _ := typesize.Size(name)
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d\n", name, size); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
