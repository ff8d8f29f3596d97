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

// Package logger provides the logrus logger shared by the allocator packages.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// L is the default logger. It writes warnings and above to stderr.
var L = New(os.Stderr, logrus.WarnLevel)

// New returns a logger writing prefixed text records to out.
func New(out io.Writer, level logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Out:   out,
		Level: level,
		Hooks: make(logrus.LevelHooks),
		Formatter: &prefixed.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			ForceFormatting: true,
		},
	}
}

// Discard returns a logger that drops every record.
func Discard() *logrus.Logger {
	return New(io.Discard, logrus.PanicLevel)
}
