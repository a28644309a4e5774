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

// Package source resolves logical URLs written in source (an href, an
// import specifier) to a canonical form and loads their contents. It is
// the only part of the engine that touches a filesystem, network, or
// in-memory overlay directly.
package source

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Resolver canonicalizes a URL relative to the document it was found in.
// Two URLs that refer to the same underlying resource must resolve to the
// identical string, since the analysis cache is keyed on that string.
type Resolver interface {
	Resolve(baseURL, ref string) (string, error)
}

// Loader fetches the contents of an already-resolved URL.
type Loader interface {
	Load(ctx context.Context, url string) ([]byte, error)
}

// PackageURLResolver resolves relative URLs against a base using standard
// path-join semantics, treating anything containing "://" as already
// absolute and left untouched (so a CDN or `https://` import is never
// rewritten).
type PackageURLResolver struct{}

func (PackageURLResolver) Resolve(baseURL, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty reference from %q", baseURL)
	}
	if strings.Contains(ref, "://") {
		return ref, nil
	}
	if strings.HasPrefix(ref, "/") {
		return ref, nil
	}
	dir := path.Dir(baseURL)
	joined := path.Join(dir, ref)
	return joined, nil
}

// IdentityResolver is the Resolver used when the engine is configured
// without one (spec: "the resolver is optional; absent, URLs pass through
// unchanged"). It returns ref verbatim, so every URL the analyzer sees is
// whatever scanners emitted, with no base-URL joining or canonicalization.
type IdentityResolver struct{}

func (IdentityResolver) Resolve(_, ref string) (string, error) { return ref, nil }

// InlineURL synthesizes the canonical URL for the nth inline sub-document
// of the given kind found within a parent document, matching the pattern
// the rest of the engine expects: "<parent>#<kind>-<index>".
func InlineURL(parentURL, kind string, index int) string {
	return fmt.Sprintf("%s#%s-%d", parentURL, kind, index)
}
