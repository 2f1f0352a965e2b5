// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides terminal output helpers for the tgbridge CLI.
//
// Colors follow the --no-color flag and the NO_COLOR environment variable,
// and are dropped when stdout is not a TTY.
//
//   - Red: errors
//   - Yellow: warnings, write statements
//   - Green: success
//   - Cyan: info, counts, read statements
//   - Bold: headers and labels
//   - Dim: paths and secondary details
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/kraklabs/tgbridge/pkg/cypher"
)

var (
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Green  = color.New(color.FgGreen)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
	Dim    = color.New(color.Faint)
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
)

// SetOutput redirects message helpers to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// InitColors configures global color output. Call it once after flag
// parsing.
func InitColors(noColor bool) {
	color.NoColor = noColor
}

func Success(msg string) {
	_, _ = Green.Fprintln(writer(), "✓ "+msg)
}

func Successf(format string, args ...any) {
	_, _ = Green.Fprintf(writer(), "✓ "+format+"\n", args...)
}

func Warning(msg string) {
	_, _ = Yellow.Fprintln(writer(), "⚠ "+msg)
}

func Warningf(format string, args ...any) {
	_, _ = Yellow.Fprintf(writer(), "⚠ "+format+"\n", args...)
}

func Error(msg string) {
	_, _ = Red.Fprintln(writer(), "✗ "+msg)
}

func Infof(format string, args ...any) {
	_, _ = Cyan.Fprintf(writer(), "ℹ "+format+"\n", args...)
}

// Header prints a bold header underlined with '='.
func Header(text string) {
	w := writer()
	_, _ = Bold.Fprintln(w, text)
	_, _ = fmt.Fprintln(w, strings.Repeat("=", len(text)))
}

// Label returns text in bold, for "Label: value" lines.
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns text dimmed.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns count in cyan.
func CountText(count int) string {
	return Cyan.Sprint(count)
}

// KindText returns the statement kind name, yellow for writes and cyan for
// reads.
func KindText(k cypher.Kind) string {
	if k.IsWrite() {
		return Yellow.Sprint(k.String())
	}
	return Cyan.Sprint(k.String())
}
