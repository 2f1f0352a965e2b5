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

package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/tgbridge/internal/errors"
	"github.com/kraklabs/tgbridge/internal/output"
	"github.com/kraklabs/tgbridge/internal/ui"
)

// initFlags holds parsed flags for the init command.
type initFlags struct {
	force                   bool
	uri, username, password string
	graph                   string
	timeoutSeconds          int
	verify                  bool
}

// runInit executes the 'init' CLI command, writing .tgbridge/config.yaml (or
// the --config path).
//
// Examples:
//
//	tgbridge init
//	tgbridge init --uri list://10.0.0.5:9090,10.0.0.6:9090 --graph movies
//	tgbridge init --uri http://localhost:7070 --force
func runInit(args []string, globals GlobalFlags, stdout io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	var f initFlags
	def := DefaultConfig()
	fs.BoolVar(&f.force, "force", false, "Overwrite existing configuration")
	fs.StringVar(&f.uri, "uri", def.Engine.URI, "Engine URI (list://host:port,... or http(s)://host:port)")
	fs.StringVar(&f.username, "username", def.Engine.Username, "Engine user")
	fs.StringVar(&f.password, "password", "", "Engine password (stored in the config file)")
	fs.StringVar(&f.graph, "graph", def.Engine.Graph, "Target graph")
	fs.IntVar(&f.timeoutSeconds, "timeout", def.Engine.TimeoutSeconds, "Per-call timeout in seconds")
	fs.BoolVar(&f.verify, "verify-connection", false, "Connect to the engine when the driver starts")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tgbridge init [options]

Creates .tgbridge/config.yaml.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	path, err := resolveConfigPath(globals.ConfigPath)
	if err != nil {
		return errors.NewConfigError("Cannot locate configuration", err.Error(), "", err)
	}
	if _, err := os.Stat(path); err == nil && !f.force {
		return errors.NewInputError("Configuration already exists", path+" already exists",
			"Use --force to overwrite it")
	}

	cfg := def
	cfg.Engine.URI = f.uri
	cfg.Engine.Username = f.username
	cfg.Engine.Password = f.password
	cfg.Engine.Graph = f.graph
	cfg.Engine.TimeoutSeconds = f.timeoutSeconds
	cfg.Engine.VerifyConnection = f.verify
	if err := cfg.Engine.Validate(); err != nil {
		return err
	}

	if err := SaveConfig(path, cfg); err != nil {
		return errors.NewConfigError("Cannot write configuration", err.Error(),
			"Check that the directory is writable", err)
	}

	if globals.JSON {
		return output.JSONTo(stdout, map[string]string{"config_path": path, "uri": cfg.Engine.URI})
	}
	ui.Successf("Created %s", path)
	if !globals.Quiet {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Next steps:")
		fmt.Fprintln(stdout, "  tgbridge status                  Check that the engine answers")
		fmt.Fprintln(stdout, "  tgbridge query 'RETURN 1'        Run a statement")
	}
	return nil
}
