// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/kraklabs/fea/internal/cliutil"
	"github.com/kraklabs/fea/internal/errutil"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func runVersion(_ []string, globals GlobalFlags) {
	if globals.JSON {
		if err := cliutil.JSON(versionInfo{Version: version, Commit: commit, Date: date}); err != nil {
			errutil.FatalError(err, true)
		}
		return
	}
	fmt.Printf("fea version %s\n", version)
	fmt.Printf("commit: %s\n", commit)
	fmt.Printf("built: %s\n", date)
}
