// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/fea/internal/cliutil"
	"github.com/kraklabs/fea/internal/errutil"
	"github.com/kraklabs/fea/internal/model"
)

// runWatch re-analyzes entry-url each time the operator presses --rescan's
// trigger key. There is no filesystem watch here deliberately: no repo in
// the retrieval pack wires an fsnotify-driven recompute loop for this kind
// of narrower incremental-analysis use case, so the loop is
// operator-driven instead. Without a file-change notification to tell it
// which URLs to fork, each rescan clears the Analyzer's cache outright
// rather than claiming an incremental reuse it cannot actually deliver —
// the cache's fork-on-change path (ClearCaches' sibling, Analyze's
// contents argument) is exercised by the single-shot `fea analyze
// --contents` flag instead, where the changed URL really is known.
func runWatch(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	rescanKey := fs.String("rescan", "enter", "Key that triggers a rescan (currently only \"enter\" is supported)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fea watch [options] <entry-url>

Re-analyzes entry-url each time you press Enter, printing the full
feature counts and warnings of each run.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: entry-url argument required")
		fs.Usage()
		os.Exit(errutil.ExitInput)
	}
	if *rescanKey != "enter" {
		errutil.FatalError(errutil.NewInputError(
			"Unsupported --rescan key",
			fmt.Sprintf("%q is not a supported trigger", *rescanKey),
			`use --rescan enter (the default)`,
		), globals.JSON)
	}
	entryURL := fs.Arg(0)

	analyzer := newAnalyzer(globals)
	defer analyzer.Close()

	cliutil.Info(fmt.Sprintf("watching %s — press Enter to rescan, Ctrl-C to quit", entryURL))

	scanner := bufio.NewScanner(os.Stdin)
	first := true
	for {
		if !first {
			analyzer.ClearCaches()
		}
		first = false

		start := time.Now()
		doc, err := analyzer.Analyze(context.Background(), entryURL, nil)
		if err != nil {
			cliutil.ErrorLine(fmt.Sprintf("analyze failed: %v", err))
		} else {
			result := buildAnalyzeResult(doc, model.QueryOptions{}, time.Since(start))
			printAnalyzeResult(doc, model.QueryOptions{}, result)
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
	}
}
