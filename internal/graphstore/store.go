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

// Package graphstore flattens a resolved Document graph into relation
// tables that can be queried ad hoc, letting a CLI run arbitrary queries
// over an analyzed project without re-walking an in-memory document graph
// for every invocation.
//
// There is no query language here, only a minimal equality-selection API
// (Select), and everything lives in process memory: the relations exist
// to serve one `fea query` invocation's lifetime, not to persist a project
// across runs. There is no pure-Go embedded graph/Datalog engine available
// for this, so the store is plain Go maps rather than an imported library
// — standard library only, kept that way deliberately: a CGO binding to an external C datastore would
// reintroduce exactly the build dependency a portable analysis engine
// needs to avoid.
package graphstore

import "sort"

// Row is one relation row: a flat set of named fields. Values are
// whatever the exporter put there (string, bool, int); Select compares
// with ==, so callers should not put slices/maps in a Row.
type Row map[string]any

// Store holds every relation populated by ExportGraph, queryable by name.
type Store struct {
	relations map[string][]Row
}

// New returns an empty Store.
func New() *Store {
	return &Store{relations: make(map[string][]Row)}
}

// Insert appends row to the named relation, creating it if necessary.
func (s *Store) Insert(relation string, row Row) {
	s.relations[relation] = append(s.relations[relation], row)
}

// Relations returns the names of every relation with at least one row, sorted.
func (s *Store) Relations() []string {
	names := make([]string, 0, len(s.relations))
	for name := range s.relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns every row in relation whose fields match where exactly.
// An empty where matches every row in the relation. Selecting an unknown
// relation returns nil, not an error: the graph may simply have no rows
// of that kind yet.
func (s *Store) Select(relation string, where map[string]any) []Row {
	rows, ok := s.relations[relation]
	if !ok {
		return nil
	}
	if len(where) == 0 {
		out := make([]Row, len(rows))
		copy(out, rows)
		return out
	}
	var out []Row
	for _, row := range rows {
		if rowMatches(row, where) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row Row, where map[string]any) bool {
	for k, want := range where {
		got, ok := row[k]
		if !ok {
			return false
		}
		if !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

// valuesEqual compares after normalizing to string, since `--where k=v`
// flags always arrive as strings but a Row may hold bool/int fields
// (e.g. "lazy=true", "line=42").
func valuesEqual(got, want any) bool {
	return toCompareString(got) == toCompareString(want)
}
