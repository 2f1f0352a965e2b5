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

// Package main implements the tgbridge CLI for translating Cypher statements
// and running them against a TuGraph engine.
//
// Usage:
//
//	tgbridge init                          Create .tgbridge/config.yaml
//	tgbridge rewrite <statement>           Print the literal query text
//	tgbridge query <statement> [--shape]   Run a statement and print results
//	tgbridge status [--json]               Show configuration and ping the engine
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	clierrors "github.com/kraklabs/tgbridge/internal/errors"
	"github.com/kraklabs/tgbridge/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds flags accepted before the command name.
type GlobalFlags struct {
	ConfigPath string
	JSON       bool
	NoColor    bool
	Quiet      bool
	Verbose    int
}

// logLevel is shared by every logger the CLI creates. Commands that load a
// configuration may lower it to the configured log_level.
var logLevel = new(slog.LevelVar)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		globals     GlobalFlags
		showVersion bool
	)
	fs := flag.NewFlagSet("tgbridge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.StringVar(&globals.ConfigPath, "config", "", "Path to .tgbridge/config.yaml (default: $TGBRIDGE_CONFIG or ./.tgbridge/config.yaml)")
	fs.BoolVar(&globals.JSON, "json", false, "Output as JSON")
	fs.BoolVar(&globals.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress progress and informational output")
	fs.CountVarP(&globals.Verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	fs.BoolVar(&showVersion, "version", false, "Show version and exit")
	fs.Usage = func() { usage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return clierrors.ExitSuccess
		}
		return clierrors.ExitInput
	}

	if showVersion {
		fmt.Fprintf(stdout, "tgbridge version %s\n", version)
		fmt.Fprintf(stdout, "commit: %s\n", commit)
		fmt.Fprintf(stdout, "built: %s\n", date)
		return clierrors.ExitSuccess
	}

	// JSON output must stay machine-readable.
	if globals.JSON {
		globals.Quiet = true
	}
	ui.InitColors(globals.NoColor || os.Getenv("NO_COLOR") != "" || !isTerminal(stdout))
	ui.SetOutput(stdout)
	setupLogging(stderr, globals)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return clierrors.ExitInput
	}

	var err error
	command, cmdArgs := rest[0], rest[1:]
	switch command {
	case "init":
		err = runInit(cmdArgs, globals, stdout)
	case "rewrite":
		err = runRewrite(cmdArgs, globals, stdout)
	case "query":
		err = runQuery(cmdArgs, globals, stdout)
	case "status":
		err = runStatus(cmdArgs, globals, stdout)
	case "completion":
		err = runCompletion(cmdArgs, stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		fs.Usage()
		return clierrors.ExitInput
	}
	if errors.Is(err, flag.ErrHelp) {
		return clierrors.ExitSuccess
	}
	return clierrors.Report(stderr, err, globals.JSON, globals.NoColor)
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `tgbridge - Cypher bridge for TuGraph

Translates parameterized Cypher statements into literal query text, sends
them to a TuGraph engine over gRPC or HTTP, and decodes the JSON results.

Usage:
  tgbridge [global options] <command> [options]

Commands:
  init          Create .tgbridge/config.yaml
  rewrite       Print the literal text a statement is sent as
  query         Run a statement and print the decoded results
  status        Show configuration and check the engine
  completion    Generate shell completion script (bash|zsh|fish)

Global Options:
`)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
Examples:
  tgbridge init --uri list://10.0.0.5:9090
  tgbridge rewrite 'MATCH (n) WHERE id(n) = $id RETURN n' --params-json '{"id": 7}'
  tgbridge query 'MATCH (n:Person) RETURN n LIMIT 5' --shape graph
  tgbridge --json status

Environment Variables:
  TGBRIDGE_CONFIG    Configuration file path
  TGBRIDGE_URI       Engine URI (list://host:port,... or http(s)://host:port)
  TGBRIDGE_USERNAME  Engine user
  TGBRIDGE_PASSWORD  Engine password
  TGBRIDGE_GRAPH     Target graph
  TGBRIDGE_TIMEOUT   Per-call timeout in seconds

For detailed command help: tgbridge <command> --help
`)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// setupLogging installs the default slog logger. Without -v only warnings
// and errors are shown; -q drops warnings too.
func setupLogging(w io.Writer, globals GlobalFlags) {
	switch {
	case globals.Verbose >= 2:
		logLevel.Set(slog.LevelDebug)
	case globals.Verbose == 1:
		logLevel.Set(slog.LevelInfo)
	case globals.Quiet:
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelWarn)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

// applyConfigLogLevel honors log_level from the configuration unless the
// level was chosen on the command line.
func applyConfigLogLevel(globals GlobalFlags, cfg *Config) {
	if globals.Verbose > 0 || globals.Quiet || cfg.LogLevel == "" {
		return
	}
	if lvl, err := parseLogLevel(cfg.LogLevel); err == nil {
		logLevel.Set(lvl)
	}
}
