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

package model

import "fmt"

// RowModel is one result row: parallel variable names and values.
type RowModel struct {
	Variables []string `json:"variables"`
	Values    []any    `json:"values"`
}

// NewRowModel returns a row, rejecting mismatched variable and value counts.
func NewRowModel(variables []string, values []any) (*RowModel, error) {
	if len(variables) != len(values) {
		return nil, fmt.Errorf("row has %d variables but %d values", len(variables), len(values))
	}
	return &RowModel{Variables: variables, Values: values}, nil
}

// Get returns the value bound to name.
func (r *RowModel) Get(name string) (any, bool) {
	for i, v := range r.Variables {
		if v == name {
			return r.Values[i], true
		}
	}
	return nil, false
}

// GraphRowModel pairs the entities of one result element with its scalar
// values.
type GraphRowModel struct {
	Graph *GraphModel `json:"graph"`
	Row   []any       `json:"row"`
}

// GraphRowListModel is the ordered collection of graph/row pairs produced by
// one mixed query.
type GraphRowListModel struct {
	Models []*GraphRowModel `json:"models"`
}

// Add appends a pair.
func (l *GraphRowListModel) Add(m *GraphRowModel) {
	l.Models = append(l.Models, m)
}

// RestModel is a generic column-name to value map.
type RestModel map[string]any
