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

package response

import "github.com/kraklabs/tgbridge/pkg/model"

// Response is a forward-only sequence of decoded models.
//
// Next returns the next model and true, or the zero value and false once the
// sequence is exhausted or closed. Close releases the decoded models; it is
// idempotent and cannot fail. Columns returns the known output columns, or an
// empty slice when the shape has none.
type Response[T any] interface {
	Next() (T, bool)
	Close()
	Columns() []string
}

// sliceResponse serves eagerly decoded models. Each instance owns its cursor.
type sliceResponse[T any] struct {
	items   []T
	pos     int
	columns []string
	closed  bool
}

func (r *sliceResponse[T]) Next() (T, bool) {
	var zero T
	if r.closed || r.pos >= len(r.items) {
		return zero, false
	}
	item := r.items[r.pos]
	r.pos++
	return item, true
}

func (r *sliceResponse[T]) Close() {
	r.closed = true
	r.items = nil
}

func (r *sliceResponse[T]) Columns() []string {
	if r.columns == nil {
		return []string{}
	}
	return r.columns
}

// Empty returns a response with no models, used when a statement is never
// sent to the engine.
func Empty[T any]() Response[T] {
	return &sliceResponse[T]{}
}

// NewMultiStatementResponse serves rows gathered from several statements
// under a single column list.
func NewMultiStatementResponse(columns []string, rows []*model.RowModel) Response[*model.RowModel] {
	return &sliceResponse[*model.RowModel]{items: rows, columns: columns}
}

// Collect drains r and closes it.
func Collect[T any](r Response[T]) []T {
	defer r.Close()
	var out []T
	for m, ok := r.Next(); ok; m, ok = r.Next() {
		out = append(out, m)
	}
	return out
}
