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

// Package testing provides test fixtures for analyzer integration tests.
//
// # Quick Start
//
// Use FixtureLoader to build an in-memory document tree without touching
// disk:
//
//	func TestAnalyze(t *testing.T) {
//	    loader := testing.FixtureLoader(map[string][]byte{
//	        "index.html": []byte(`<script src="app.js"></script>`),
//	        "app.js":     []byte(`function setup() {}`),
//	    })
//
//	    analyzer := engine.New(engine.Config{Loader: loader, ...})
//	    doc, err := analyzer.Analyze(ctx, "index.html", nil)
//	    require.NoError(t, err)
//	}
//
// For tests that exercise the afs-backed FSLoader directly, use
// WriteFixtureDir to materialize the same fixture set as real files under
// a temp directory that is cleaned up automatically.
package testing
