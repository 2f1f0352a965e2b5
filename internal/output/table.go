// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/kraklabs/tgbridge/pkg/model"
)

const maxCell = 60

// Table writes headers and rows as aligned columns followed by a row count.
// An empty table prints "No results".
func Table(w io.Writer, headers []string, rows [][]any) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	upper := make([]string, len(headers))
	sep := make([]string, len(headers))
	for i, h := range headers {
		upper[i] = strings.ToUpper(h)
		sep[i] = "---"
	}
	_, _ = fmt.Fprintln(tw, strings.Join(upper, "\t"))
	_, _ = fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = FormatCell(v)
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
	return err
}

// FormatCell renders one value. Long values are truncated and composite
// values are shown as compact JSON.
func FormatCell(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		return "<null>"
	case string:
		s = val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	case map[string]any, []any, model.RestModel:
		data, err := json.Marshal(val)
		if err != nil {
			s = fmt.Sprintf("%v", val)
		} else {
			s = string(data)
		}
	default:
		s = fmt.Sprintf("%v", val)
	}
	if len(s) > maxCell {
		return s[:maxCell-3] + "..."
	}
	return s
}

// Rows renders row models under columns. Rows shorter than columns get
// empty cells.
func Rows(w io.Writer, columns []string, rows []*model.RowModel) error {
	cells := make([][]any, len(rows))
	for i, r := range rows {
		line := make([]any, len(columns))
		for j, c := range columns {
			if v, ok := r.Get(c); ok {
				line[j] = v
			} else {
				line[j] = ""
			}
		}
		cells[i] = line
	}
	return Table(w, columns, cells)
}

// Graphs renders the nodes and relationships of every graph, one table
// each, numbered by result element.
func Graphs(w io.Writer, graphs []*model.GraphModel) error {
	if len(graphs) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}
	var nodes, rels [][]any
	for i, g := range graphs {
		for _, n := range g.Nodes() {
			nodes = append(nodes, []any{i, n.ID, strings.Join(n.Labels, ":"), map[string]any(n.Properties)})
		}
		for _, r := range g.Relationships() {
			rels = append(rels, []any{i, r.ID, r.Type, r.StartNode, r.EndNode, map[string]any(r.Properties)})
		}
	}

	_, _ = fmt.Fprintln(w, "Nodes:")
	if err := Table(w, []string{"#", "id", "labels", "properties"}, nodes); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "\nRelationships:")
	return Table(w, []string{"#", "id", "type", "start", "end", "properties"}, rels)
}

// Rest renders rest models with one column per key seen across all models,
// sorted by name. Nil placeholders become rows of empty cells.
func Rest(w io.Writer, models []model.RestModel) error {
	seen := make(map[string]bool)
	var columns []string
	for _, m := range models {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	rows := make([][]any, len(models))
	for i, m := range models {
		line := make([]any, len(columns))
		for j, c := range columns {
			if v, ok := m[c]; ok {
				line[j] = v
			} else {
				line[j] = ""
			}
		}
		rows[i] = line
	}
	return Table(w, columns, rows)
}

// Statistics writes the non-zero counters, one per line. Nothing is written
// when every counter is zero.
func Statistics(w io.Writer, s model.QueryStatistics) error {
	counters := []struct {
		name  string
		value int
	}{
		{"nodes created", s.NodesCreated},
		{"nodes deleted", s.NodesDeleted},
		{"relationships created", s.RelationshipsCreated},
		{"relationships deleted", s.RelationshipsDeleted},
		{"properties set", s.PropertiesSet},
		{"labels added", s.LabelsAdded},
		{"labels removed", s.LabelsRemoved},
		{"indexes added", s.IndexesAdded},
		{"indexes removed", s.IndexesRemoved},
		{"constraints added", s.ConstraintsAdded},
		{"constraints removed", s.ConstraintsRemoved},
	}
	for _, c := range counters {
		if c.value == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %d\n", c.name, c.value); err != nil {
			return err
		}
	}
	return nil
}
