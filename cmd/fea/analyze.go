// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/fea/internal/cliutil"
	"github.com/kraklabs/fea/internal/errutil"
	"github.com/kraklabs/fea/internal/model"
)

// AnalyzeResult is the --json shape for `fea analyze`.
type AnalyzeResult struct {
	URL           string         `json:"url"`
	FeatureCounts map[string]int `json:"feature_counts"`
	Warnings      []WarningJSON  `json:"warnings"`
	DurationMs    int64          `json:"duration_ms"`
}

// WarningJSON is the --json shape for one warning.
type WarningJSON struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	URL      string `json:"url"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
}

func runAnalyze(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	contentsPath := fs.String("contents", "", "Analyze this file's contents in place of the entry URL's real contents")
	imported := fs.Bool("imported", false, "Include features from imported documents, not just the entry document")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fea analyze [options] <entry-url>

Analyzes one entry document and its transitive dependency graph, printing
the resolved feature counts and any warnings raised along the way.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  fea analyze index.html
  fea analyze index.html --json
  fea analyze index.html --contents ./edited-index.html
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: entry-url argument required")
		fs.Usage()
		os.Exit(errutil.ExitInput)
	}
	entryURL := fs.Arg(0)

	contents, err := loadContents(*contentsPath)
	if err != nil {
		errutil.FatalError(err, globals.JSON)
	}

	analyzer := newAnalyzer(globals)
	defer analyzer.Close()

	progressCfg := cliutil.NewProgressConfig(globals.Quiet || globals.JSON, globals.NoColor)
	spinner := cliutil.NewSpinner(progressCfg, "analyzing "+entryURL)

	start := time.Now()
	doc, err := analyzer.Analyze(context.Background(), entryURL, contents)
	if spinner != nil {
		_ = spinner.Finish()
	}
	if err != nil {
		errutil.FatalError(errutil.NewSourceError(
			"Cannot analyze entry document",
			err.Error(),
			"pass an existing entry URL, or --contents to analyze in-memory text",
			err,
		), globals.JSON)
	}

	opts := model.QueryOptions{Imported: *imported}
	result := buildAnalyzeResult(doc, opts, time.Since(start))

	if globals.JSON {
		if err := cliutil.JSON(result); err != nil {
			errutil.FatalError(err, true)
		}
		return
	}
	printAnalyzeResult(doc, opts, result)
}

func buildAnalyzeResult(doc *model.Document, opts model.QueryOptions, elapsed time.Duration) AnalyzeResult {
	counts := make(map[string]int)
	for _, f := range doc.GetFeatures(opts) {
		if kinds := f.Kinds(); len(kinds) > 0 {
			counts[kinds[0]]++
		}
	}

	warnings := doc.GetWarnings(opts)
	wj := make([]WarningJSON, 0, len(warnings))
	for _, w := range warnings {
		wj = append(wj, WarningJSON{
			Code:     w.Code,
			Message:  w.Message,
			URL:      w.SourceRange.URL,
			Line:     w.SourceRange.Start.Line,
			Column:   w.SourceRange.Start.Column,
			Severity: w.Severity.String(),
		})
	}

	return AnalyzeResult{
		URL:           doc.URL(),
		FeatureCounts: counts,
		Warnings:      wj,
		DurationMs:    elapsed.Milliseconds(),
	}
}

func printAnalyzeResult(doc *model.Document, opts model.QueryOptions, result AnalyzeResult) {
	cliutil.Header(fmt.Sprintf("Analysis: %s", result.URL))

	kinds := make([]string, 0, len(result.FeatureCounts))
	for k := range result.FeatureCounts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  %s: %s\n", cliutil.Label(k), cliutil.CountText(result.FeatureCounts[k]))
	}

	warnings := doc.GetWarnings(opts)
	if len(warnings) > 0 {
		fmt.Println()
		cliutil.SubHeader(fmt.Sprintf("Warnings (%d)", len(warnings)))
		for _, w := range warnings {
			cliutil.PrintWarning(w)
		}
	}

	fmt.Println()
	fmt.Println(cliutil.DimText(fmt.Sprintf("analyzed in %dms", result.DurationMs)))
}
