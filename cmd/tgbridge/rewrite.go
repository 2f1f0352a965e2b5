// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/tgbridge/internal/errors"
	"github.com/kraklabs/tgbridge/internal/output"
	"github.com/kraklabs/tgbridge/internal/ui"
	"github.com/kraklabs/tgbridge/pkg/cypher"
	"github.com/kraklabs/tgbridge/pkg/request"
)

// RewriteResult is the --json output of rewrite.
type RewriteResult struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text"`
	Unbound []string `json:"unbound_placeholders,omitempty"`
}

// runRewrite prints the literal text a statement is sent to the engine as.
// No engine or configuration is needed.
//
// Examples:
//
//	tgbridge rewrite 'MATCH (n) WHERE id(n) = $id RETURN n' --params-json '{"id": 7}'
//	tgbridge rewrite 'CREATE (n:Person) SET n = row.props' -p rows.yaml
//	echo 'MATCH (n) RETURN n' | tgbridge rewrite -
func runRewrite(args []string, globals GlobalFlags, stdout io.Writer) error {
	fs := flag.NewFlagSet("rewrite", flag.ContinueOnError)
	var params paramFlags
	params.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tgbridge rewrite [options] <statement|->

Prints the literal query text a parameterized statement is translated to.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.NewInputError("Expected exactly one statement", fmt.Sprintf("got %d arguments", fs.NArg()),
			"Quote the statement, or pass - to read it from stdin")
	}

	text, err := statementText(fs.Arg(0))
	if err != nil {
		return err
	}
	values, err := params.load()
	if err != nil {
		return err
	}
	values, err = request.ConvertParameters(values)
	if err != nil {
		return err
	}

	kind := cypher.Classify(text)
	literal, err := cypher.Rewrite(text, values)
	if err != nil {
		return err
	}
	result := RewriteResult{
		Kind:    kind.String(),
		Text:    literal,
		Unbound: cypher.UnboundPlaceholders(literal),
	}

	if globals.JSON {
		return output.JSONTo(stdout, result)
	}
	if !globals.Quiet {
		fmt.Fprintf(stdout, "%s %s\n\n", ui.Label("Kind:"), ui.KindText(kind))
	}
	fmt.Fprintln(stdout, result.Text)
	if len(result.Unbound) > 0 && !globals.Quiet {
		ui.Warningf("unbound placeholders: %v", result.Unbound)
	}
	return nil
}

// flagError turns a flag parse failure into an input error. Help requests
// pass through.
func flagError(err error) error {
	if err == flag.ErrHelp {
		return err
	}
	return errors.NewInputError("Invalid arguments", err.Error(), "Run with --help for usage")
}
