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

// Package anacache implements the analysis engine's incremental cache: a
// generation of in-flight and completed work keyed by URL, with cheap
// fork-on-change semantics so re-analyzing after an edit only redoes work
// that could have been affected by it.
package anacache

import (
	"sync"

	"github.com/kraklabs/fea/internal/model"
)

// Future is a single in-flight or completed unit of cached work. It must
// be published into the relevant Cache map (via one of the GetOrCreate*
// methods) before the goroutine computing it ever suspends, so a second
// caller asking for the same URL observes the in-flight Future instead of
// starting duplicate work.
type Future struct {
	done   chan struct{}
	result any
	err    error
}

// NewFuture creates an unresolved Future. The caller must arrange for
// Resolve to be called exactly once, typically from a freshly started
// goroutine, after publishing the Future via a Cache method.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolve completes the Future. Calling it more than once panics, matching
// the single-assignment discipline the engine's concurrency model relies
// on (see the package doc's "publish before suspend" note).
func (f *Future) Resolve(result any, err error) {
	f.result, f.err = result, err
	close(f.done)
}

// Wait blocks until the Future resolves and returns its raw result.
func (f *Future) Wait() (any, error) {
	<-f.done
	return f.result, f.err
}

// Wait blocks on f and type-asserts its result to T, which is convenient
// at call sites that know the concrete type a given cache bucket holds.
func Wait[T any](f *Future) (T, error) {
	result, err := f.Wait()
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	return result.(T), nil
}

// Cache holds the four generations of cached analysis work described by
// the engine's concurrency model: parse results, scan results,
// dependency-scan results, and fully analyzed documents. Forking produces
// a new Cache that shares every entry by reference except the ones
// invalidated by the path change, giving re-analysis after a single-file
// edit a cost proportional to that file's importers, not the whole graph.
type Cache struct {
	mu sync.Mutex

	parsed              map[string]*Future // url -> Future(model.ParsedDocument)
	scanned             map[string]*Future // url -> Future(*model.ScannedDocument)
	dependenciesScanned map[string]*Future // url -> Future(struct{})

	scannedDocuments  map[string]*model.ScannedDocument // completed, for fast fork invalidation
	analyzedDocuments map[string]*model.Document        // completed/in-progress, published via GetOrCreateDocument

	// importers maps a URL to the set of URLs that import it, built up as
	// scans complete, so Fork can compute which analyzed documents are
	// affected by a change without re-walking the whole graph.
	importers map[string]map[string]bool
}

// New builds an empty Cache generation.
func New() *Cache {
	return &Cache{
		parsed:              make(map[string]*Future),
		scanned:             make(map[string]*Future),
		dependenciesScanned: make(map[string]*Future),
		scannedDocuments:    make(map[string]*model.ScannedDocument),
		analyzedDocuments:   make(map[string]*model.Document),
		importers:           make(map[string]map[string]bool),
	}
}

// GetOrCreateParsed returns the existing Future for url's parse result, or
// publishes and returns newFuture()'s result if none exists yet. newFuture
// is called at most once per URL per generation, while c's lock is held,
// so it must only construct and return a Future — the caller starts the
// goroutine that resolves it after this call returns.
func (c *Cache) GetOrCreateParsed(url string, newFuture func() *Future) (*Future, bool) {
	return c.getOrCreate(c.parsed, url, newFuture)
}

// GetOrCreateScanned is GetOrCreateParsed for the single-document scan bucket.
func (c *Cache) GetOrCreateScanned(url string, newFuture func() *Future) (*Future, bool) {
	return c.getOrCreate(c.scanned, url, newFuture)
}

// GetOrCreateDependenciesScanned is GetOrCreateParsed for the
// whole-subtree-scanned bucket.
func (c *Cache) GetOrCreateDependenciesScanned(url string, newFuture func() *Future) (*Future, bool) {
	return c.getOrCreate(c.dependenciesScanned, url, newFuture)
}

func (c *Cache) getOrCreate(m map[string]*Future, url string, newFuture func() *Future) (f *Future, existed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := m[url]; ok {
		return existing, true
	}
	f = newFuture()
	m[url] = f
	return f, false
}

// PutScannedDocument records a completed scan result for fast invalidation
// lookups and updates the importer index for every import edge it found.
func (c *Cache) PutScannedDocument(url string, sd *model.ScannedDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scannedDocuments[url] = sd
	for _, imp := range sd.Imports() {
		if c.importers[imp.URL] == nil {
			c.importers[imp.URL] = make(map[string]bool)
		}
		c.importers[imp.URL][url] = true
	}
}

// PutAnalyzedDocument records a completed analysis result.
func (c *Cache) PutAnalyzedDocument(url string, doc *model.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.analyzedDocuments[url] = doc
}

// GetOrCreateDocument returns the existing Document for url, or publishes
// and returns newDoc()'s result if none exists yet. This is what prevents
// the race the engine's concurrency model calls out explicitly: two
// concurrent resolutions reaching the same url — whether two top-level
// Analyze calls for the same URL, two different roots that share an
// imported dependency, or a cyclic import looping back to a document
// already on its own resolution stack — must never construct two
// separate Document objects for it. The caller that gets existed=false
// owns driving doc from Unresolved through Resolved; any other caller
// gets the same object back immediately, possibly still mid-resolution,
// which is the intended fixed-point behavior for import cycles.
func (c *Cache) GetOrCreateDocument(url string, newDoc func() *model.Document) (doc *model.Document, existed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok := c.analyzedDocuments[url]; ok {
		return d, true
	}
	d := newDoc()
	c.analyzedDocuments[url] = d
	return d, false
}

// GetAnalyzedDocument returns the completed Document for url, if any, and
// whether it was found. It never blocks on in-flight work and never
// raises an error for a miss, matching the engine's quiet getDocument
// contract.
func (c *Cache) GetAnalyzedDocument(url string) (*model.Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.analyzedDocuments[url]
	return d, ok
}

// ImportersOf returns the URLs known to import url, from the importer
// index built up as scans complete.
func (c *Cache) ImportersOf(url string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for importer := range c.importers[url] {
		out = append(out, importer)
	}
	return out
}

// Fork produces a new Cache generation with the given changed URLs (and
// everything transitively importing them) invalidated, while every other
// entry is shared by reference with the parent generation. This is what
// makes re-analysis after editing one file proportional to that file's
// reverse-dependency closure rather than the whole graph.
func (c *Cache) Fork(changedURLs []string) *Cache {
	c.mu.Lock()
	defer c.mu.Unlock()

	invalid := make(map[string]bool)
	var frontier []string
	for _, u := range changedURLs {
		invalid[u] = true
		frontier = append(frontier, u)
	}
	for len(frontier) > 0 {
		u := frontier[0]
		frontier = frontier[1:]
		for importer := range c.importers[u] {
			if !invalid[importer] {
				invalid[importer] = true
				frontier = append(frontier, importer)
			}
		}
	}

	next := &Cache{
		parsed:              make(map[string]*Future, len(c.parsed)),
		scanned:             make(map[string]*Future, len(c.scanned)),
		dependenciesScanned: make(map[string]*Future, len(c.dependenciesScanned)),
		scannedDocuments:    make(map[string]*model.ScannedDocument, len(c.scannedDocuments)),
		analyzedDocuments:   make(map[string]*model.Document, len(c.analyzedDocuments)),
		importers:           make(map[string]map[string]bool, len(c.importers)),
	}
	for u, f := range c.parsed {
		if !invalid[u] {
			next.parsed[u] = f
		}
	}
	for u, f := range c.scanned {
		if !invalid[u] {
			next.scanned[u] = f
			next.scannedDocuments[u] = c.scannedDocuments[u]
		}
	}
	for u, f := range c.dependenciesScanned {
		if !invalid[u] {
			next.dependenciesScanned[u] = f
		}
	}
	for u, doc := range c.analyzedDocuments {
		if !invalid[u] {
			next.analyzedDocuments[u] = doc
		}
	}
	for u, importers := range c.importers {
		if invalid[u] {
			continue
		}
		cp := make(map[string]bool, len(importers))
		for k, v := range importers {
			cp[k] = v
		}
		next.importers[u] = cp
	}
	return next
}

// Clear discards every cached entry, returning an empty generation. Used
// when a caller wants to force a full re-analysis rather than an
// incremental fork.
func (c *Cache) Clear() *Cache {
	return New()
}
