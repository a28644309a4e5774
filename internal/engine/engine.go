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

// Package engine orchestrates the parse → scan → resolve pipeline over the
// source, langparse, langscan, and anacache packages, producing the
// resolved model.Document graph a caller queries.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gammazero/workerpool"

	"github.com/kraklabs/fea/internal/anacache"
	"github.com/kraklabs/fea/internal/graphstore"
	"github.com/kraklabs/fea/internal/langparse"
	"github.com/kraklabs/fea/internal/langscan"
	"github.com/kraklabs/fea/internal/model"
	"github.com/kraklabs/fea/internal/source"
	"github.com/kraklabs/fea/internal/telemetry"
	"github.com/kraklabs/fea/internal/warning"
)

// Config controls how an Analyzer is constructed.
type Config struct {
	Loader         source.Loader
	Resolver       source.Resolver
	Parsers        *langparse.Registry
	Scanners       *langscan.Registry
	Logger         *slog.Logger
	Telemetry      *telemetry.Telemetry
	MaxScanWorkers int // bounds concurrent dependency-scan fan-out; 0 uses a sane default
}

// Analyzer is the engine's public entry point: Analyze runs the full
// parse/scan/resolve pipeline for one URL against a shared, incrementally
// reusable Cache.
type Analyzer struct {
	loader    source.Loader
	resolver  source.Resolver
	parsers   *langparse.Registry
	scanners  *langscan.Registry
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
	pool      *workerpool.WorkerPool

	cacheMu sync.RWMutex
	cache   *anacache.Cache

	overlay *source.OverlayLoader

	// inlineOffsetsMu guards inlineOffsets, which records where each
	// inline sub-document's synthetic URL (source.InlineURL) begins within
	// its host document's contents, so parseOne can fold a model.InlineInfo
	// into the inline document's Base and have it report host-relative
	// source ranges (spec.md §3's locationOffset). Populated by
	// scanDependencies the moment it discovers the inline feature, before
	// the inline document is ever parsed.
	inlineOffsetsMu sync.Mutex
	inlineOffsets   map[string]inlineOffset
}

type inlineOffset struct {
	parentURL           string
	startOffsetInParent int
}

// New builds an Analyzer. Loader is wrapped in an OverlayLoader so
// Analyze's optional contents argument can shadow the real source without
// mutating it.
func New(cfg Config) *Analyzer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Telemetry == nil {
		cfg.Telemetry = telemetry.New()
	}
	if cfg.Resolver == nil {
		cfg.Resolver = source.IdentityResolver{}
	}
	workers := cfg.MaxScanWorkers
	if workers <= 0 {
		workers = 8
	}
	overlay := source.NewOverlayLoader(cfg.Loader)
	return &Analyzer{
		loader:    overlay,
		resolver:  cfg.Resolver,
		parsers:   cfg.Parsers,
		scanners:  cfg.Scanners,
		logger:    cfg.Logger,
		telemetry: cfg.Telemetry,
		pool:      workerpool.New(workers),
		cache:     anacache.New(),
		overlay:   overlay,

		inlineOffsets: make(map[string]inlineOffset),
	}
}

// registerInlineOffset records that childURL (an inline sub-document's
// synthetic URL) begins at startOffsetInParent within parentURL's own
// contents, so a later parseOne(childURL) can report host-relative
// positions.
func (a *Analyzer) registerInlineOffset(childURL, parentURL string, startOffsetInParent int) {
	a.inlineOffsetsMu.Lock()
	defer a.inlineOffsetsMu.Unlock()
	a.inlineOffsets[childURL] = inlineOffset{parentURL: parentURL, startOffsetInParent: startOffsetInParent}
}

func (a *Analyzer) inlineOffsetFor(childURL string) (inlineOffset, bool) {
	a.inlineOffsetsMu.Lock()
	defer a.inlineOffsetsMu.Unlock()
	off, ok := a.inlineOffsets[childURL]
	return off, ok
}

// Telemetry exposes the stopwatch/measurement store for callers that want
// to report on analysis performance.
func (a *Analyzer) Telemetry() *telemetry.Telemetry { return a.telemetry }

// Close releases pooled resources. Safe to call once analysis is done.
func (a *Analyzer) Close() {
	a.pool.StopWait()
}

// Analyze resolves url to a fully-analyzed Document. If contents is
// non-nil, it is used in place of whatever the Loader would otherwise
// fetch for url, and the cache is forked so only url and its importers
// are invalidated — everything else from a prior Analyze call on the
// same Analyzer is reused.
func (a *Analyzer) Analyze(ctx context.Context, url string, contents []byte) (*model.Document, error) {
	sw := a.telemetry.Start("analyze", url)

	if contents != nil {
		a.overlay.Set(url, contents)
		a.cacheMu.Lock()
		a.cache = a.cache.Fork([]string{url})
		a.cacheMu.Unlock()
	}

	a.cacheMu.RLock()
	cache := a.cache
	a.cacheMu.RUnlock()

	if err := a.scanAll(ctx, cache, url); err != nil {
		sw.Stop(err)
		return nil, err
	}
	doc, err := a.resolveDocument(ctx, cache, url)
	sw.Stop(err)
	return doc, err
}

// Load fetches url's contents directly, without running it through the
// parse/scan/resolve pipeline. If providedContents is non-nil it is
// installed as url's overlay (the same shadowing Analyze's contents
// argument uses) and returned as-is; otherwise the request falls through
// to the configured Loader. Useful for callers (the CLI's `--contents`
// flag, a future editor integration) that want to read a file the way the
// analyzer would without triggering analysis.
func (a *Analyzer) Load(ctx context.Context, url string, providedContents []byte) ([]byte, error) {
	if providedContents != nil {
		a.overlay.Set(url, providedContents)
		return providedContents, nil
	}
	return a.loader.Load(ctx, url)
}

// ClearCaches discards every cached parse/scan/dependency-scan/analyze
// result for every URL, forcing the next Analyze call to redo the full
// pipeline from scratch rather than forking incrementally off the prior
// generation. Unlike Analyze's per-URL fork, this is a full reset —
// appropriate when the caller can no longer trust any assumption the
// cache was built under (e.g. the project root moved, or an unbounded
// number of files changed at once).
func (a *Analyzer) ClearCaches() {
	a.cacheMu.Lock()
	defer a.cacheMu.Unlock()
	a.cache = a.cache.Clear()
}

// ExportGraph flattens doc and everything transitively reachable from it
// into a fresh graphstore.Store, for callers (the CLI's `fea query`
// subcommand) that want to run ad-hoc selection queries without re-
// walking the live Document graph themselves.
func (a *Analyzer) ExportGraph(doc *model.Document) *graphstore.Store {
	s := graphstore.New()
	graphstore.ExportGraph(s, doc)
	return s
}

// GetDocument returns the already-analyzed Document for url without
// triggering any work. Per the engine's quiet-lookup contract (an
// unanalyzed URL is not itself an error condition — most callers should
// reach a document through Analyze instead), a miss is logged at Debug
// and reported only via the boolean, never as an error.
func (a *Analyzer) GetDocument(url string) (*model.Document, bool) {
	a.cacheMu.RLock()
	cache := a.cache
	a.cacheMu.RUnlock()
	d, ok := cache.GetAnalyzedDocument(url)
	if !ok {
		a.logger.Debug("engine.get_document.miss", "url", url)
	}
	return d, ok
}

// scanOne parses and scans a single URL (not its dependencies), memoized
// per Cache generation so concurrent callers for the same URL share one
// parse+scan instead of duplicating the work. The Future is published
// before doScanOne is started, so a second caller observes the same
// in-flight Future rather than racing a duplicate scan.
func (a *Analyzer) scanOne(ctx context.Context, cache *anacache.Cache, url string) (*model.ScannedDocument, error) {
	f, existed := cache.GetOrCreateScanned(url, anacache.NewFuture)
	if !existed {
		go a.doScanOne(ctx, cache, url, f)
	}
	return anacache.Wait[*model.ScannedDocument](f)
}

func (a *Analyzer) doScanOne(ctx context.Context, cache *anacache.Cache, url string, f *anacache.Future) {
	sw := a.telemetry.Start("scan", url)
	sd, err := a.performScan(ctx, cache, url)
	sw.Stop(err)
	if err != nil {
		a.logger.Warn("engine.scan_one.failed", "url", url, "error", err)
	} else {
		cache.PutScannedDocument(url, sd)
	}
	f.Resolve(sd, err)
}

// parseOne loads and parses a single URL, memoized per Cache generation in
// its own bucket distinct from scanOne's — spec §5 lists parsing as its
// own suspension point, and memoizing it separately means a URL reached
// both as an import target (which only needs the parse to find further
// nested imports in some front-end stacks) and as a scan target doesn't
// redo the load+parse twice. The Future is published before
// doParseOne starts, same publish-before-suspend discipline as scanOne.
func (a *Analyzer) parseOne(ctx context.Context, cache *anacache.Cache, url string) (model.ParsedDocument, error) {
	f, existed := cache.GetOrCreateParsed(url, anacache.NewFuture)
	if !existed {
		go a.doParseOne(ctx, cache, url, f)
	}
	return anacache.Wait[model.ParsedDocument](f)
}

func (a *Analyzer) doParseOne(ctx context.Context, cache *anacache.Cache, url string, f *anacache.Future) {
	sw := a.telemetry.Start("parse", url)
	contents, err := a.loader.Load(ctx, url)
	if err != nil {
		sw.Stop(err)
		f.Resolve(nil, fmt.Errorf("loading %s: %w", url, err))
		return
	}

	var inline *model.InlineInfo
	if off, ok := a.inlineOffsetFor(url); ok {
		parent, perr := a.parseOne(ctx, cache, off.parentURL)
		if perr != nil {
			sw.Stop(perr)
			f.Resolve(nil, fmt.Errorf("parsing host %s of inline %s: %w", off.parentURL, url, perr))
			return
		}
		inline = &model.InlineInfo{Parent: parent, StartOffsetInParent: off.startOffsetInParent}
	}

	parsed, err := a.parsers.Parse(langparse.TypeForURL(url), url, contents, inline)
	sw.Stop(err)
	if err != nil {
		f.Resolve(nil, fmt.Errorf("parsing %s: %w", url, err))
		return
	}
	f.Resolve(parsed, nil)
}

func (a *Analyzer) performScan(ctx context.Context, cache *anacache.Cache, url string) (*model.ScannedDocument, error) {
	parsed, err := a.parseOne(ctx, cache, url)
	if err != nil {
		return nil, err
	}
	typ := langparse.TypeForURL(url)
	features, warnings, err := a.scanners.Scan(typ, parsed)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", url, err)
	}
	return &model.ScannedDocument{
		Document: parsed,
		Features: features,
		Warnings: warnings,
		IsInline: model.IsInlinePath(url),
	}, nil
}

// scanAll scans url and its whole transitive dependency subtree, fanning
// out across the worker pool, and is itself memoized per Cache generation
// so a second top-level Analyze call on the same root does no rework.
func (a *Analyzer) scanAll(ctx context.Context, cache *anacache.Cache, root string) error {
	f, existed := cache.GetOrCreateDependenciesScanned(root, anacache.NewFuture)
	if !existed {
		go func() {
			err := a.scanDependencies(ctx, cache, root, newVisitedSet())
			f.Resolve(struct{}{}, err)
		}()
	}
	_, err := f.Wait()
	return err
}

// scanDependencies scans url and recursively fans out across its import
// edges and inline sub-documents. visited is scoped to a single top-level
// scanAll call and guards against revisiting a URL already queued within
// this call, which the Cache's Future-based memoization alone cannot do
// for cyclic imports (two cyclic URLs waiting on each other's in-flight
// Future would deadlock without it).
//
// Only url's own scanOne failure is returned to the caller. A failure
// discovered deeper in the subtree (an import target that cannot be
// loaded, an inline document that cannot be parsed) is logged here and
// left for resolveDocument to turn into a per-feature warning instead of
// aborting the whole scanAll fan-out: per the propagation policy, a
// single unreachable file never fails the containing analysis, only the
// document whose own source cannot be read does (see Analyze's root
// scanAll call, where this same function's failure for the root URL is
// the one case that does abort).
func (a *Analyzer) scanDependencies(ctx context.Context, cache *anacache.Cache, url string, visited *visitedSet) error {
	if !visited.markVisited(url) {
		return nil
	}

	sd, err := a.scanOne(ctx, cache, url)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	for _, imp := range sd.Imports() {
		if imp.Lazy {
			// lazy-html-import: not followed eagerly (spec §4.4). Its
			// target is only scanned on demand when resolveDocument
			// reaches it while building the feature graph.
			continue
		}
		target, rerr := a.resolver.Resolve(url, imp.URL)
		if rerr != nil {
			a.logger.Warn("engine.scan_dependencies.resolve_failed", "url", url, "ref", imp.URL, "error", rerr)
			continue
		}
		wg.Add(1)
		a.pool.Submit(func() {
			defer wg.Done()
			if cerr := a.scanDependencies(ctx, cache, target, visited); cerr != nil {
				a.logger.Warn("engine.scan_dependencies.import_failed", "url", url, "target", target, "error", cerr)
			}
		})
	}

	for idx, inline := range sd.InlineDocuments() {
		synthURL := source.InlineURL(url, inline.Type, idx)
		a.overlay.Set(synthURL, []byte(inline.Contents))
		a.registerInlineOffset(synthURL, url, inline.LocationOffset)
		wg.Add(1)
		a.pool.Submit(func() {
			defer wg.Done()
			if cerr := a.scanDependencies(ctx, cache, synthURL, visited); cerr != nil {
				a.logger.Warn("engine.scan_dependencies.inline_failed", "url", url, "inline", synthURL, "error", cerr)
			}
		})
	}

	wg.Wait()
	return nil
}

// resolveDocument builds the resolved model.Document for url. It is
// deliberately synchronous and depth-first rather than goroutine-based:
// a cycle back to a document already on the current resolution stack, or
// a concurrent resolveDocument call for the same url reached through a
// different root entirely, is just a Cache.GetOrCreateDocument lookup
// away — whichever caller wins the race to create the Document owns
// driving it to Resolved, and every other caller gets the same object
// back immediately rather than racing a duplicate construction.
func (a *Analyzer) resolveDocument(ctx context.Context, cache *anacache.Cache, url string) (*model.Document, error) {
	sd, err := a.scanOne(ctx, cache, url)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", url, err)
	}

	doc, existed := cache.GetOrCreateDocument(url, func() *model.Document {
		return model.New(url, sd.Document, packageNameForURL(url), sd.IsInline)
	})
	if existed {
		return doc, nil
	}

	doc.BeginResolving()

	var features []model.Feature
	var warnings []*warning.Warning
	var imports []*model.Import
	warnings = append(warnings, sd.Warnings...)

	inlineIdx := 0
	for _, sf := range sd.Features {
		switch v := sf.(type) {
		case *model.ScannedImport:
			imp := model.NewImport(v.SR, v.ImportKind, v.URL, v.Lazy)
			target, rerr := a.resolver.Resolve(url, v.URL)
			if rerr != nil {
				// the reference itself is malformed/unresolvable — the
				// target URL was never even identified.
				warnings = append(warnings, warning.New("could-not-resolve-reference",
					fmt.Sprintf("could not resolve %q: %v", v.URL, rerr), v.SR, warning.WarningSeverity))
			} else if targetDoc, terr := a.resolveDocument(ctx, cache, target); terr != nil {
				// the target URL was identified but its contents could
				// not be read/parsed/scanned at all.
				warnings = append(warnings, warning.New("could-not-load",
					fmt.Sprintf("could not load %q: %v", target, terr), v.SR, warning.Error))
			} else {
				imp.ResolvedDocument = targetDoc
			}
			imports = append(imports, imp)
			features = append(features, imp)

		case *model.ScannedInlineDocument:
			synthURL := source.InlineURL(url, v.Type, inlineIdx)
			inlineIdx++
			a.overlay.Set(synthURL, []byte(v.Contents))
			a.registerInlineOffset(synthURL, url, v.LocationOffset)
			inlineDoc, ierr := a.resolveDocument(ctx, cache, synthURL)
			inline := model.NewInlineDocument(v.SR, v.Type, inlineDoc)
			if ierr != nil {
				warnings = append(warnings, warning.New("could-not-load",
					fmt.Sprintf("could not analyze inline %s document: %v", v.Type, ierr), v.SR, warning.Error))
			}
			// inlineDoc's own warnings are not copied in here: Document.walk
			// always descends into d.inline regardless of QueryOptions, so
			// GetWarnings/GetFeatures already surface them. Each one already
			// carries this host document's URL and host-relative line/column
			// (model.Base folds the InlineInfo parseOne passed it into every
			// Position/SourceRangeFor it computes), so no remapping is needed
			// here — only model.Document's own identity (synthURL) stays
			// local, for cache/indexing purposes.
			features = append(features, inline)

		case *model.ScannedElement:
			features = append(features, model.NewElement(v.SR, v.TagName, v.ClassName, v.Attributes))

		case *model.ScannedPolymerElement:
			behaviors, behaviorWarnings := resolveBehaviors(v.SR, v.Behaviors, features, imports)
			warnings = append(warnings, behaviorWarnings...)
			features = append(features, model.NewPolymerElement(v.SR, v.TagName, v.ClassName, behaviors, v.Mixins))

		case *model.ScannedBehavior:
			features = append(features, model.NewBehavior(v.SR, v.Name))

		case *model.ScannedNamespace:
			features = append(features, model.NewNamespace(v.SR, v.Name))

		case *model.ScannedFunction:
			features = append(features, model.NewFunction(v.SR, v.Name))

		case *model.ScannedReference:
			ref := model.NewReference(v.SR, v.Identifier)
			// Deliberately same-document only: a full cross-document global
			// identifier index is out of scope here, so a reference only
			// resolves against features already seen earlier in this
			// document's own feature list.
			for _, other := range features {
				found := false
				for _, id := range other.Identifiers() {
					if id == v.Identifier {
						found = true
						break
					}
				}
				if found {
					ref.Target = other
					break
				}
			}
			features = append(features, ref)
		}
	}

	doc.FinishResolving(features, warnings, imports)
	return doc, nil
}

// packageDirMarkers are the directory names under which the analyzer
// treats a document as belonging to a dependency's own package rather
// than the project root, mirroring the front-end ecosystem's two
// conventional vendoring locations.
var packageDirMarkers = []string{"bower_components/", "node_modules/"}

// packageNameForURL returns the name of the dependency package url lives
// under, or "" if url is part of the project root. QueryOptions.
// ExternalPackages controls whether transitive queries cross this
// boundary.
func packageNameForURL(url string) string {
	for _, marker := range packageDirMarkers {
		idx := strings.Index(url, marker)
		if idx < 0 {
			continue
		}
		rest := url[idx+len(marker):]
		if slash := strings.Index(rest, "/"); slash >= 0 {
			return rest[:slash]
		}
		return rest
	}
	return ""
}

// resolveBehaviors implements getBehaviors (spec §4.6): it looks each
// named behavior assignment up against the document's own behavior index
// first, then against every import already resolved earlier in this same
// document's feature list, deduplicates the result by feature identity, and
// emits a behavior-not-recognized warning for any name that matches
// nothing reachable.
func resolveBehaviors(sr warning.SourceRange, names []string, localFeatures []model.Feature, imports []*model.Import) ([]*model.Behavior, []*warning.Warning) {
	var resolved []*model.Behavior
	var warnings []*warning.Warning
	seen := make(map[*model.Behavior]bool)

	for _, name := range names {
		b := findBehavior(name, localFeatures, imports)
		if b == nil {
			warnings = append(warnings, warning.New("behavior-not-recognized",
				fmt.Sprintf("behavior %q is not recognized", name), sr, warning.WarningSeverity))
			continue
		}
		if seen[b] {
			continue
		}
		seen[b] = true
		resolved = append(resolved, b)
	}
	return resolved, warnings
}

func findBehavior(name string, localFeatures []model.Feature, imports []*model.Import) *model.Behavior {
	for _, f := range localFeatures {
		if b, ok := f.(*model.Behavior); ok && hasIdentifier(b, name) {
			return b
		}
	}
	for _, imp := range imports {
		if imp.ResolvedDocument == nil {
			continue
		}
		matches := imp.ResolvedDocument.GetByID("behavior", name, model.QueryOptions{Imported: true})
		if len(matches) == 1 {
			if b, ok := matches[0].(*model.Behavior); ok {
				return b
			}
		}
	}
	return nil
}

func hasIdentifier(f model.Feature, id string) bool {
	for _, i := range f.Identifiers() {
		if i == id {
			return true
		}
	}
	return false
}

// visitedSet is a mutex-guarded set scoped to a single top-level scanAll
// call, breaking scan-time cycles that the Cache's Future memoization
// alone would deadlock on.
type visitedSet struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[string]bool)}
}

// markVisited reports whether url had not yet been seen by this set,
// marking it seen either way.
func (v *visitedSet) markVisited(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.seen[url] {
		return false
	}
	v.seen[url] = true
	return true
}
