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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/tgbridge/internal/output"
	"github.com/kraklabs/tgbridge/internal/ui"
	"github.com/kraklabs/tgbridge/pkg/driver"
)

// StatusResult represents the engine status for JSON output.
type StatusResult struct {
	ConfigPath     string    `json:"config_path"`
	URI            string    `json:"uri"`
	Graph          string    `json:"graph"`
	TimeoutSeconds float64   `json:"timeout_seconds"`
	Checked        bool      `json:"checked"`
	Connected      bool      `json:"connected"`
	LatencyMS      int64     `json:"latency_ms,omitempty"`
	Error          string    `json:"error,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// runStatus executes the 'status' CLI command: it shows the effective engine
// configuration and runs RETURN 1 against the engine.
//
// Flags:
//   - --offline: Show configuration without contacting the engine
//
// Examples:
//
//	tgbridge status
//	tgbridge --json status
func runStatus(args []string, globals GlobalFlags, stdout io.Writer) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	offline := fs.Bool("offline", false, "Do not contact the engine")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tgbridge status [options]

Shows the engine configuration and checks that the engine answers.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	cfg, path, err := LoadConfig(globals.ConfigPath)
	if err != nil {
		return err
	}
	applyConfigLogLevel(globals, cfg)

	result := &StatusResult{
		ConfigPath:     path,
		URI:            cfg.Engine.URI,
		Graph:          cfg.Engine.GraphName(),
		TimeoutSeconds: cfg.Engine.Timeout().Seconds(),
		Timestamp:      time.Now(),
	}

	var pingErr error
	if !*offline {
		result.Checked = true
		pingErr = ping(cfg.Engine, result)
	}

	if globals.JSON {
		if err := output.JSONTo(stdout, result); err != nil {
			return err
		}
		return pingErr
	}

	ui.Header("tgbridge Status")
	fmt.Fprintf(stdout, "%s %s\n", ui.Label("Config:"), ui.DimText(result.ConfigPath))
	fmt.Fprintf(stdout, "%s %s\n", ui.Label("URI:"), result.URI)
	fmt.Fprintf(stdout, "%s %s\n", ui.Label("Graph:"), result.Graph)
	fmt.Fprintf(stdout, "%s %gs\n", ui.Label("Timeout:"), result.TimeoutSeconds)
	fmt.Fprintln(stdout)

	switch {
	case !result.Checked:
		ui.Infof("engine not contacted (--offline)")
	case result.Connected:
		ui.Successf("engine answered in %dms", result.LatencyMS)
	default:
		ui.Error("engine did not answer")
	}
	return pingErr
}

func ping(cfg driver.Config, result *StatusResult) error {
	d, err := driver.New(cfg, driver.WithLogger(slog.Default()))
	if err != nil {
		result.Error = err.Error()
		return err
	}
	defer d.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	start := time.Now()
	if _, err := d.Ping(ctx); err != nil {
		result.Error = err.Error()
		return err
	}
	result.Connected = true
	result.LatencyMS = time.Since(start).Milliseconds()
	return nil
}
