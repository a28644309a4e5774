// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/fea/internal/cliutil"
	"github.com/kraklabs/fea/internal/errutil"
	"github.com/kraklabs/fea/internal/graphstore"
)

func runQuery(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	where := fs.StringArray("where", nil, "Filter rows by field=value, repeatable")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fea query [options] <entry-url> <relation>

Analyzes entry-url, exports its resolved graph, and selects rows from
relation (one of fea_document, fea_feature, fea_import_edge,
fea_reference_edge).

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  fea query index.html fea_feature --where kind=function
  fea query index.html fea_import_edge --where lazy=true --json
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: exactly two arguments required: <entry-url> <relation>")
		fs.Usage()
		os.Exit(errutil.ExitInput)
	}
	entryURL, relation := fs.Arg(0), fs.Arg(1)

	filter, err := parseWhere(*where)
	if err != nil {
		errutil.FatalError(err, globals.JSON)
	}

	analyzer := newAnalyzer(globals)
	defer analyzer.Close()

	doc, err := analyzer.Analyze(context.Background(), entryURL, nil)
	if err != nil {
		errutil.FatalError(errutil.NewSourceError(
			"Cannot analyze entry document",
			err.Error(),
			"pass an existing entry URL",
			err,
		), globals.JSON)
	}

	store := analyzer.ExportGraph(doc)
	rows := store.Select(relation, filter)

	if globals.JSON {
		if err := cliutil.JSON(rows); err != nil {
			errutil.FatalError(err, true)
		}
		return
	}
	printRows(rows)
}

func parseWhere(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, errutil.NewInputError(
				"Invalid --where clause",
				fmt.Sprintf("%q is not in key=value form", p),
				"pass --where field=value, e.g. --where kind=function",
			)
		}
		out[k] = v
	}
	return out, nil
}

func printRows(rows []graphstore.Row) {
	if len(rows) == 0 {
		fmt.Println("No results")
		return
	}

	columns := rowColumns(rows)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, c := range columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, strings.ToUpper(c))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, c := range columns {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprintf(w, "%v", row[c])
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	fmt.Printf("\n(%d rows)\n", len(rows))
}

// rowColumns returns the union of every field name across rows, sorted,
// so heterogeneous rows (not every row sets every optional field) still
// print as a rectangular table.
func rowColumns(rows []graphstore.Row) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}
