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
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// FindModuleRoot walks up from startDir looking for a go.mod, returning the
// directory that contains it and the module's declared path, the same way
// the Go toolchain itself finds a module boundary. The fea subcommands do
// not call it.
//
// Returns ("", "", nil) if no go.mod is found between startDir and the
// filesystem root; this is not an error, since plenty of front-end trees
// are not Go modules at all.
func FindModuleRoot(startDir string) (dir string, modulePath string, err error) {
	dir, err = filepath.Abs(startDir)
	if err != nil {
		return "", "", err
	}
	for {
		candidate := filepath.Join(dir, "go.mod")
		data, readErr := os.ReadFile(candidate)
		if readErr == nil {
			modulePath = modfile.ModulePath(data)
			return dir, modulePath, nil
		}
		if !os.IsNotExist(readErr) {
			return "", "", readErr
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}
