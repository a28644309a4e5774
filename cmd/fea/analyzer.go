// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"log/slog"
	"os"

	"github.com/kraklabs/fea/internal/engine"
	"github.com/kraklabs/fea/internal/errutil"
	"github.com/kraklabs/fea/internal/langparse"
	"github.com/kraklabs/fea/internal/langscan"
	"github.com/kraklabs/fea/internal/source"
)

// newLogger builds the process-wide slog.Logger, with verbosity controlled
// by -v/-vv.
func newLogger(globals GlobalFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case globals.Verbose >= 2:
		level = slog.LevelDebug
	case globals.Verbose == 1:
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// defaultRegistries wires up every built-in parser/scanner this
// distribution ships, so `fea analyze` can handle a typical HTML/JS/CSS/
// JSON front end without any plugin configuration.
func defaultRegistries(logger *slog.Logger) (*langparse.Registry, *langscan.Registry) {
	parsers := langparse.NewRegistry()
	parsers.Register("html", langparse.HTMLParser{})
	parsers.Register("css", langparse.CSSParser{})
	parsers.Register("json", langparse.JSONParser{})
	parsers.Register("js", langparse.NewJSParser(logger))
	parsers.Register("typescript", langparse.NewTypeScriptParser(logger))

	scanners := langscan.NewRegistry()
	scanners.Register("html", langscan.HTMLScanner{})
	scanners.Register("js", langscan.JSScanner{})
	scanners.Register("typescript", langscan.JSScanner{})

	return parsers, scanners
}

// newAnalyzer builds an Analyzer over the real filesystem, ready to
// analyze any entry URL reachable from the current working directory.
func newAnalyzer(globals GlobalFlags) *engine.Analyzer {
	logger := newLogger(globals)
	parsers, scanners := defaultRegistries(logger)
	return engine.New(engine.Config{
		Loader:   source.NewFSLoader(),
		Resolver: source.PackageURLResolver{},
		Parsers:  parsers,
		Scanners: scanners,
		Logger:   logger,
	})
}

// loadContents reads --contents' path, if set, wrapping failures as a
// UserError with an actionable fix.
func loadContents(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errutil.NewInputError(
			"Cannot read --contents file",
			err.Error(),
			"pass a path to an existing, readable file",
		)
	}
	return data, nil
}
