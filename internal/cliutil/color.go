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

// Package cliutil provides the fea CLI's presentation layer: colored
// terminal output, JSON encoding for --json flags, progress reporting, and
// a warning-underlining printer that renders a warning.Warning against the
// source line its SourceRange points at. None of this is part of the
// analysis engine's contract — it exists only to exercise the engine end
// to end from a terminal.
//
// Color usage follows the same convention throughout: red for errors,
// yellow for warnings, green for success, cyan for info, bold for headers.
package cliutil

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Green  = color.New(color.FgGreen)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
	Dim    = color.New(color.Faint)
)

// InitColors configures global color output based on the --no-color flag.
// fatih/color already respects NO_COLOR automatically; this gives the CLI
// explicit control too.
func InitColors(noColor bool) {
	color.NoColor = noColor
}

func Success(msg string) { _, _ = Green.Println("✓ " + msg) }

func Successf(format string, args ...any) { _, _ = Green.Printf("✓ "+format+"\n", args...) }

func WarningLine(msg string) { _, _ = Yellow.Println("⚠ " + msg) }

func Warningf(format string, args ...any) { _, _ = Yellow.Printf("⚠ "+format+"\n", args...) }

func ErrorLine(msg string) { _, _ = Red.Println("✗ " + msg) }

func Errorf(format string, args ...any) { _, _ = Red.Printf("✗ "+format+"\n", args...) }

func Info(msg string) { _, _ = Cyan.Println("ℹ " + msg) }

func Infof(format string, args ...any) { _, _ = Cyan.Printf("ℹ "+format+"\n", args...) }

// Header prints a bold header with an underline separator.
func Header(text string) {
	_, _ = Bold.Println(text)
	fmt.Println(strings.Repeat("=", len(text)))
}

func SubHeader(text string) { _, _ = Bold.Println(text) }

func Label(text string) string { return Bold.Sprint(text) }

func DimText(text string) string { return Dim.Sprint(text) }

func CountText(count int) string { return Cyan.Sprint(count) }
