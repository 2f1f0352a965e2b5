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
	"os/signal"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/tgbridge/internal/errors"
	"github.com/kraklabs/tgbridge/internal/output"
	"github.com/kraklabs/tgbridge/pkg/driver"
	"github.com/kraklabs/tgbridge/pkg/model"
	"github.com/kraklabs/tgbridge/pkg/request"
	"github.com/kraklabs/tgbridge/pkg/response"
)

// Result shapes accepted by --shape.
const (
	shapeRow      = "row"
	shapeGraph    = "graph"
	shapeGraphRow = "graph-row"
	shapeRest     = "rest"
	shapeDefault  = "default"
)

var shapes = []string{shapeRow, shapeGraph, shapeGraphRow, shapeRest, shapeDefault}

// QueryResult is the --json output of query. Only the field for the chosen
// shape is set.
type QueryResult struct {
	Shape      string                     `json:"shape"`
	Columns    []string                   `json:"columns,omitempty"`
	Rows       []*model.RowModel          `json:"rows,omitempty"`
	Graphs     []*model.GraphModel        `json:"graphs,omitempty"`
	GraphRows  []*model.GraphRowListModel `json:"graph_rows,omitempty"`
	Rest       []model.RestModel          `json:"rest,omitempty"`
	Statistics *model.QueryStatistics     `json:"statistics,omitempty"`
	ElapsedMS  int64                      `json:"elapsed_ms"`
}

// runQuery executes the 'query' CLI command: it rewrites the statement, sends
// it to the configured engine and prints the decoded models.
//
// Flags:
//   - --shape: row, graph, graph-row, rest or default (default: row)
//   - --graph: Target graph (default: from config)
//   - --timeout: Per-call timeout (default: from config)
//   - -p/--params, --params-json: Statement parameters
//
// With --shape default every argument is a separate statement and the rows
// of all of them are printed under the first statement's columns.
//
// Examples:
//
//	tgbridge query 'MATCH (n:Person) RETURN n.name, n.age'
//	tgbridge query 'MATCH (n) WHERE id(n) = $id RETURN n' --params-json '{"id": 7}' --shape graph
//	tgbridge query --shape default 'MATCH (a:A) RETURN a.x' 'MATCH (b:B) RETURN b.x'
func runQuery(args []string, globals GlobalFlags, stdout io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	shape := fs.String("shape", shapeRow, "Result shape: "+strings.Join(shapes, ", "))
	graph := fs.String("graph", "", "Target graph (default: engine.graph from config)")
	timeout := fs.Duration("timeout", 0, "Per-call timeout (default: engine.timeout_seconds from config)")
	var params paramFlags
	params.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tgbridge query [options] <statement|-> [statement...]

Runs a statement against the configured TuGraph engine.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	if !validShape(*shape) {
		return errors.NewInputError("Unknown result shape", fmt.Sprintf("%q", *shape),
			"Use one of: "+strings.Join(shapes, ", "))
	}
	if fs.NArg() == 0 || (*shape != shapeDefault && fs.NArg() != 1) {
		fs.Usage()
		return errors.NewInputError("Expected one statement",
			fmt.Sprintf("got %d arguments", fs.NArg()),
			"Quote the statement, or use --shape default to run several")
	}

	values, err := params.load()
	if err != nil {
		return err
	}
	var stmts []model.Statement
	for _, arg := range fs.Args() {
		text, err := statementText(arg)
		if err != nil {
			return err
		}
		stmts = append(stmts, model.NewStatement(text, values))
	}

	cfg, _, err := LoadConfig(globals.ConfigPath)
	if err != nil {
		return err
	}
	applyConfigLogLevel(globals, cfg)

	var reqOpts []request.Option
	if *graph != "" {
		reqOpts = append(reqOpts, request.WithGraph(*graph))
	}
	if *timeout > 0 {
		reqOpts = append(reqOpts, request.WithTimeout(*timeout))
	}
	d, err := driver.New(cfg.Engine,
		driver.WithLogger(slog.Default()),
		driver.WithRequestOptions(reqOpts...),
	)
	if err != nil {
		return err
	}
	defer d.Close()

	req, err := d.Request()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spinner := NewSpinner(NewProgressConfig(globals), "Querying "+cfg.Engine.GraphName())
	start := time.Now()
	result, err := execute(ctx, req, *shape, stmts)
	stopSpinner(spinner)
	if err != nil {
		return err
	}
	result.ElapsedMS = time.Since(start).Milliseconds()

	if globals.JSON {
		return output.JSONTo(stdout, result)
	}
	return render(stdout, result)
}

func validShape(s string) bool {
	for _, v := range shapes {
		if v == s {
			return true
		}
	}
	return false
}

func execute(ctx context.Context, req *request.Request, shape string, stmts []model.Statement) (*QueryResult, error) {
	result := &QueryResult{Shape: shape}
	stmt := stmts[0]

	switch shape {
	case shapeGraph:
		resp, err := req.ExecuteGraph(ctx, request.GraphModelRequest{Statement: stmt})
		if err != nil {
			return nil, err
		}
		result.Graphs = response.Collect(resp)
	case shapeGraphRow:
		resp, err := req.ExecuteGraphRow(ctx, request.GraphRowListModelRequest{Statement: stmt})
		if err != nil {
			return nil, err
		}
		result.GraphRows = response.Collect(resp)
	case shapeRest:
		resp, err := req.ExecuteRest(ctx, request.RestModelRequest{Statement: stmt})
		if err != nil {
			return nil, err
		}
		stats := resp.Statistics()
		result.Statistics = &stats
		result.Rest = response.Collect[model.RestModel](resp)
	case shapeDefault:
		resp, err := req.ExecuteDefault(ctx, request.DefaultRequest{Statements: stmts})
		if err != nil {
			return nil, err
		}
		result.Columns = resp.Columns()
		result.Rows = response.Collect(resp)
	default:
		resp, err := req.ExecuteRow(ctx, request.RowModelRequest{Statement: stmt})
		if err != nil {
			return nil, err
		}
		result.Columns = resp.Columns()
		result.Rows = response.Collect(resp)
	}
	return result, nil
}

func render(w io.Writer, r *QueryResult) error {
	switch r.Shape {
	case shapeGraph:
		return output.Graphs(w, r.Graphs)
	case shapeGraphRow:
		var graphs []*model.GraphModel
		var rows [][]any
		for _, list := range r.GraphRows {
			for _, m := range list.Models {
				rows = append(rows, []any{len(graphs), m.Row})
				graphs = append(graphs, m.Graph)
			}
		}
		if err := output.Graphs(w, graphs); err != nil {
			return err
		}
		fmt.Fprintln(w, "\nValues:")
		return output.Table(w, []string{"#", "row"}, rows)
	case shapeRest:
		if err := output.Rest(w, r.Rest); err != nil {
			return err
		}
		if r.Statistics != nil && *r.Statistics != (model.QueryStatistics{}) {
			fmt.Fprintln(w)
			return output.Statistics(w, *r.Statistics)
		}
		return nil
	default:
		return output.Rows(w, r.Columns, r.Rows)
	}
}
