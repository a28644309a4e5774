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

// Package langscan maps a file-type tag to the ordered set of Scanners
// that walk a ParsedDocument and emit ScannedFeatures. Scanners never see
// other documents: import targets are recorded as unresolved
// ScannedImport URLs and resolved later by the engine.
package langscan

import (
	"sync"

	"github.com/kraklabs/fea/internal/model"
	"github.com/kraklabs/fea/internal/warning"
)

// Scanner extracts ScannedFeatures from one ParsedDocument. Scan returns
// the features found plus any warnings about the document itself (not
// fatal parse errors, which belong to the Parser instead).
type Scanner interface {
	Scan(doc model.ParsedDocument) ([]model.ScannedFeature, []*warning.Warning, error)
}

// Registry maps a file-type tag to its ordered scanners.
type Registry struct {
	mu       sync.RWMutex
	scanners map[string][]Scanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: make(map[string][]Scanner)}
}

// Register appends a Scanner to the ordered list for typ.
func (r *Registry) Register(typ string, s Scanner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scanners[typ] = append(r.scanners[typ], s)
}

// For returns the scanners registered for typ, in registration order.
func (r *Registry) For(typ string) []Scanner {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Scanner(nil), r.scanners[typ]...)
}

// Scan runs every scanner registered for typ against doc and concatenates
// their output.
func (r *Registry) Scan(typ string, doc model.ParsedDocument) ([]model.ScannedFeature, []*warning.Warning, error) {
	var features []model.ScannedFeature
	var warnings []*warning.Warning
	for _, s := range r.For(typ) {
		fs, ws, err := s.Scan(doc)
		if err != nil {
			return nil, nil, err
		}
		features = append(features, fs...)
		warnings = append(warnings, ws...)
	}
	return features, warnings, nil
}
