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

package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

// FSLoader loads document contents through an abstract filesystem, so the
// same engine works against a local checkout, an in-memory overlay used by
// tests, or (with the right afs submodule imported by the caller) a remote
// object store, all addressed by ordinary URLs.
type FSLoader struct {
	fs storage.Service
}

// NewFSLoader builds a Loader backed by afs's default service, which
// understands "file://" URLs and bare filesystem paths out of the box.
func NewFSLoader() *FSLoader {
	return &FSLoader{fs: afs.New()}
}

func (l *FSLoader) Load(ctx context.Context, url string) ([]byte, error) {
	data, err := l.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", url, err)
	}
	return data, nil
}

// OverlayLoader serves fixed, in-memory contents for a set of URLs and
// falls back to a delegate Loader for everything else. Analyzing a single
// edited document without writing it to disk first (the incremental
// use case the analysis cache exists for) goes through this loader.
type OverlayLoader struct {
	mu       sync.RWMutex
	overlay  map[string][]byte
	delegate Loader
}

// NewOverlayLoader builds an OverlayLoader around an optional delegate;
// a nil delegate is valid for tests that only ever load overlaid URLs.
func NewOverlayLoader(delegate Loader) *OverlayLoader {
	return &OverlayLoader{overlay: make(map[string][]byte), delegate: delegate}
}

// Set installs fixed contents for url, shadowing the delegate. Safe to call
// concurrently with Load, since inline sub-documents are overlaid while the
// scan phase is fanning out across a worker pool.
func (l *OverlayLoader) Set(url string, contents []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.overlay[url] = contents
}

// Unset removes any overlay for url, restoring delegate lookups.
func (l *OverlayLoader) Unset(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.overlay, url)
}

func (l *OverlayLoader) Load(ctx context.Context, url string) ([]byte, error) {
	l.mu.RLock()
	data, ok := l.overlay[url]
	l.mu.RUnlock()
	if ok {
		return data, nil
	}
	if l.delegate == nil {
		return nil, fmt.Errorf("no overlay for %s and no delegate loader configured", url)
	}
	return l.delegate.Load(ctx, url)
}
