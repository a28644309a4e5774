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

// Package config loads and saves the per-project configuration file that
// tells the CLI which document to start analyzing and how. There is no
// embedded database to open here — the analyzer's state lives entirely in
// memory for the lifetime of one process, so this package only concerns
// itself with the handful of settings a caller would otherwise have to
// repeat on every invocation.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DirName is the directory, relative to a project root, that holds the
// project config file.
const DirName = ".fea"

// FileName is the config file's name within DirName.
const FileName = "project.yaml"

// Project holds a front-end tree's analysis settings.
type Project struct {
	// EntryURLs lists the project's entry documents. The fea subcommands
	// do not read this file; each takes its entry URL on the command line.
	EntryURLs []string `yaml:"entry_urls"`

	// Exclude lists glob patterns for paths the loader should never
	// resolve into, even if something imports them (vendored bundles,
	// generated output).
	Exclude []string `yaml:"exclude,omitempty"`

	// LazyEdgesPath optionally points at a file enumerating import edges
	// that should be treated as lazy (see model.ScannedImport.Lazy) when the
	// source itself has no syntax to express that, e.g. a bundler config
	// driving code-splitting decisions.
	LazyEdgesPath string `yaml:"lazy_edges_path,omitempty"`

	// CacheDir optionally persists analysis telemetry/graph exports
	// between runs. Empty means in-memory only.
	CacheDir string `yaml:"cache_dir,omitempty"`
}

// Default returns the configuration used when no project file exists.
func Default() *Project {
	return &Project{
		EntryURLs: []string{"index.html"},
	}
}

// Path returns the project config file path under root.
func Path(root string) string {
	return filepath.Join(root, DirName, FileName)
}

// Load reads and parses the project config file at root. A missing file
// is not an error: it returns Default().
func Load(root string) (*Project, error) {
	data, err := os.ReadFile(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read project config: %w", err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project config: %w", err)
	}
	return &p, nil
}

// Save writes p as the project config file under root, creating the
// .fea directory if needed. Calling Save twice with the same values is
// idempotent.
func Save(root string, p *Project, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Join(root, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project config: %w", err)
	}
	path := Path(root)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("config.project.save", "path", path, "entry_urls", p.EntryURLs)
	return nil
}

// Init writes a fresh project config under root, seeded with entryURLs,
// unless one already exists (in which case it is left untouched and its
// path is returned as-is — init is deliberately idempotent).
func Init(root string, entryURLs []string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	path := Path(root)
	if _, err := os.Stat(path); err == nil {
		logger.Debug("config.project.init.exists", "path", path)
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	p := Default()
	if len(entryURLs) > 0 {
		p.EntryURLs = entryURLs
	}
	if err := Save(root, p, logger); err != nil {
		return "", err
	}
	return path, nil
}
