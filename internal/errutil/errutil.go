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

// Package errutil provides structured error handling for the fea CLI.
//
// It defines UserError, a type that carries structured error information:
// what went wrong, why, and how to fix it. It also defines consistent exit
// codes for the error categories the analysis engine actually raises (a
// missing entry document, a source layer that cannot load a URL, a parser
// that cannot make sense of a file, bad CLI input, and internal bugs).
//
// # Usage Example
//
//	err := errutil.NewSourceError(
//	    "Cannot load entry document",
//	    "no file exists at ./app/index.html",
//	    "pass an existing entry URL, or --contents to analyze in-memory text",
//	    underlyingErr,
//	)
//	if err != nil {
//	    errutil.FatalError(err, false)
//	}
package errutil

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConfig indicates configuration errors (missing/invalid project config).
	ExitConfig = 1

	// ExitSource indicates the source layer could not load a URL (entry
	// document missing, loader failure).
	ExitSource = 2

	// ExitParse indicates a parser could not make sense of a document's
	// contents (only raised for the root document; transitive parse
	// failures become warnings instead, per the engine's error taxonomy).
	ExitParse = 3

	// ExitInput indicates invalid user input (bad arguments, validation errors).
	ExitInput = 4

	// ExitInternal indicates internal errors (bugs, unexpected panics).
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
//
// It provides three levels of information: Message (what went wrong),
// Cause (why), and Fix (an actionable suggestion). It also carries an exit
// code for consistent CLI exit behavior and optionally wraps an underlying
// error for error-chain compatibility.
type UserError struct {
	Message  string
	Cause    string
	Fix      string
	ExitCode int
	Err      error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error { return e.Err }

// NewConfigError creates a configuration error with exit code ExitConfig.
// Use this for errors loading or validating a project config file.
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitConfig, Err: err}
}

// NewSourceError creates a source-loading error with exit code ExitSource.
// Use this when the root document cannot be loaded at all (§7 taxonomy
// item 1 applies only to dependencies; a failure on the entry URL itself
// fails the whole analyze call).
func NewSourceError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitSource, Err: err}
}

// NewParseError creates a parse error with exit code ExitParse. Use this
// when the root document's contents cannot be parsed at all.
func NewParseError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitParse, Err: err}
}

// NewInputError creates an input validation error with exit code ExitInput.
// Input errors typically do not wrap an underlying error.
func NewInputError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInput}
}

// NewInternalError creates an internal error with exit code ExitInternal.
// Use this for invariant violations the engine's design notes call fatal
// programmer errors (e.g. a duplicate ScannedDocument insert for a URL).
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInternal, Err: err}
}

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display, with
// colored Error/Cause/Fix sections. Empty Cause or Fix fields are omitted.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()
	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")
	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}
	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}
	return out.String()
}

// ErrorJSON is the JSON-serializable form of a UserError.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to its JSON-serializable form.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{Error: e.Message, Cause: e.Cause, Fix: e.Fix, ExitCode: e.ExitCode}
}

// FatalError prints err and exits with the appropriate code. A nil err is a
// no-op and returns; otherwise it never returns.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}
	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", "  ")
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(os.Stderr, ue.Format(false))
		}
		os.Exit(ue.ExitCode)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(ExitInternal)
}
