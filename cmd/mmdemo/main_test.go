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
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// flags keep their values between executions of the same command tree
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        string
		wantContain    []string
		wantNotContain []string
	}{
		{
			name: "heap source",
			args: []string{"run", "--source", "heap", "--page-size", "4096", "--max-pages", "0", "--family", ""},
			wantContain: []string{
				"Page Family: emp_t, Size: 36\nPage Family: student_t, Size: 64\n",
				"SCENARIO 1",
				"vm_page_family : int, struct size = 4",
				"# Of VM Pages in Use : 3 (12288 Bytes)",
				"# Of VM Pages in Use : 2 (8192 Bytes)",
				"# Of VM Pages in Use : 0 (0 Bytes)",
				"Total Memory being used by Memory Manager = 4096 Bytes",
				"SCENARIO 3",
			},
			wantNotContain: []string{"\x1b["},
		},
		{
			name:        "default source",
			args:        []string{"run"},
			wantContain: []string{"SCENARIO 3", "# Of VM Pages in Use : 0 (0 Bytes)"},
		},
		{
			name:    "page size with mmap",
			args:    []string{"run", "--source", "mmap", "--page-size", "8192"},
			wantErr: "--page-size only applies to --source heap",
		},
		{
			name:        "mmap source",
			args:        []string{"run", "--source", "mmap", "--max-pages", "0", "--family", ""},
			wantContain: []string{"SCENARIO 3", "# Of VM Pages in Use : 0 (0 Bytes)"},
		},
		{
			name:           "family filter",
			args:           []string{"run", "--source", "heap", "--page-size", "4096", "--max-pages", "0", "--family", "student_t"},
			wantContain:    []string{"vm_page_family : student_t", "# Of VM Pages in Use : 1 (4096 Bytes)"},
			wantNotContain: []string{"vm_page_family : emp_t", "vm_page_family : int"},
		},
		{
			name:    "out of pages",
			args:    []string{"run", "--source", "heap", "--page-size", "4096", "--max-pages", "2", "--family", ""},
			wantErr: "allocate 30 x emp_t",
		},
		{
			name:    "unknown source",
			args:    []string{"run", "--source", "tape", "--max-pages", "0", "--family", ""},
			wantErr: `unknown page source "tape"`,
		},
		{
			name:    "invalid page size",
			args:    []string{"run", "--source", "heap", "--page-size", "-1", "--max-pages", "0", "--family", ""},
			wantErr: "invalid page size -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execCommand(t, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.wantContain {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.wantNotContain {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestSizesCommand(t *testing.T) {
	out, err := execCommand(t, "sizes")
	require.NoError(t, err)
	assert.Contains(t, out, "char                 1\n")
	assert.Contains(t, out, "unsigned long long   8\n")
}
