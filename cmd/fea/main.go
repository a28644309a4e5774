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

// Package main implements the fea CLI for analyzing a front-end source
// tree's cross-file, cross-language dependency graph.
//
// Usage:
//
//	fea analyze <entry-url> [--json] [--contents file]   Analyze one entry document
//	fea query <entry-url> <relation> [--where k=v]... [--json]   Query the exported graph
//	fea watch <entry-url> [--rescan]                      Re-analyze on demand
//	fea version                                           Show version and exit
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/fea/internal/cliutil"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags are parsed ahead of the subcommand name and threaded into
// every command via its --json/--quiet/--no-color convention.
type GlobalFlags struct {
	JSON    bool
	Quiet   bool
	NoColor bool
	Verbose int
}

func main() {
	fs := flag.NewFlagSet("fea", flag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true

	var globals GlobalFlags
	fs.BoolVar(&globals.JSON, "json", false, "Output machine-readable JSON")
	fs.BoolVar(&globals.Quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&globals.NoColor, "no-color", false, "Disable colored output")
	fs.CountVarP(&globals.Verbose, "verbose", "v", "Increase log verbosity (-v, -vv)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `fea - Front-end dependency graph analyzer

Usage:
  fea <command> [options]

Commands:
  analyze   Analyze an entry document and print its resolved feature graph
  query     Run an ad-hoc selection query against the exported graph
  watch     Re-analyze an entry document on demand
  version   Show version and exit

Global Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	cliutil.InitColors(globals.NoColor)

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "analyze":
		runAnalyze(cmdArgs, globals)
	case "query":
		runQuery(cmdArgs, globals)
	case "watch":
		runWatch(cmdArgs, globals)
	case "version":
		runVersion(cmdArgs, globals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		fs.Usage()
		os.Exit(1)
	}
}
