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

package langparse

import (
	"encoding/json"
	"fmt"

	"github.com/kraklabs/fea/internal/model"
)

// JSONDocument is a parsed JSON file (bower.json, package.json, polymer.json).
// No scanner currently mines features out of it; the default registry still
// exercises the contract so a future scanner has somewhere to plug in.
type JSONDocument struct {
	model.Base
	Value any
}

// JSONParser parses JSON using the standard library decoder.
type JSONParser struct{}

func (JSONParser) Parse(url string, contents []byte, inline *model.InlineInfo) (model.ParsedDocument, error) {
	var v any
	if len(contents) > 0 {
		if err := json.Unmarshal(contents, &v); err != nil {
			return nil, fmt.Errorf("parsing JSON %s: %w", url, err)
		}
	}
	return &JSONDocument{
		Base:  newBaseFor(url, "json", contents, inline),
		Value: v,
	}, nil
}
