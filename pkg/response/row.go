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

import (
	"fmt"

	"github.com/kraklabs/tgbridge/pkg/model"
)

const shapeRow = "row"

// Batched creation results carry ref0..refN, id0..idN and a type.
const (
	refPrefix = "ref"
	idPrefix  = "id"
	typeKey   = "type"
)

var refColumns = []string{"id", "ref", "type"}

// RowResponse serves RowModels. Its columns are the variables of the first
// row.
type RowResponse struct {
	sliceResponse[*model.RowModel]
}

// NewRowResponse decodes raw into rows. An array yields one row per element;
// the object returned by batched creation (ref0, id0, ..., type) is unfolded
// into one id/ref/type row per created entity; any other object is one row.
func NewRowResponse(raw string) (*RowResponse, error) {
	rows, err := decodeRows(raw)
	if err != nil {
		return nil, err
	}
	resp := &RowResponse{sliceResponse[*model.RowModel]{items: rows}}
	if len(rows) > 0 {
		resp.columns = rows[0].Variables
	}
	return resp, nil
}

func decodeRows(raw string) ([]*model.RowModel, error) {
	v, err := top(shapeRow, raw)
	if err != nil || v == nil {
		return nil, err
	}

	var elems []any
	switch x := v.(type) {
	case []any:
		elems = x
	case *object:
		if x.has(refPrefix+"0") && x.has(typeKey) {
			return refRows(x), nil
		}
		elems = []any{x}
	default:
		return nil, decodeErr(shapeRow, "expected object or array, got %T", v)
	}

	rows := make([]*model.RowModel, 0, len(elems))
	for i, e := range elems {
		obj, ok := e.(*object)
		if !ok {
			return nil, decodeErr(shapeRow, "element %d is %T, not an object", i, e)
		}
		rows = append(rows, rowFrom(obj))
	}
	return rows, nil
}

func rowFrom(o *object) *model.RowModel {
	vars := make([]string, len(o.keys))
	vals := make([]any, len(o.keys))
	for i, k := range o.keys {
		vars[i] = k
		vals[i] = plain(o.values[k])
	}
	return &model.RowModel{Variables: vars, Values: vals}
}

func refRows(o *object) []*model.RowModel {
	typ := plain(o.values[typeKey])
	var rows []*model.RowModel
	for i := 0; ; i++ {
		ref, ok := o.values[fmt.Sprintf("%s%d", refPrefix, i)]
		if !ok {
			break
		}
		id := o.values[fmt.Sprintf("%s%d", idPrefix, i)]
		rows = append(rows, &model.RowModel{
			Variables: refColumns,
			Values:    []any{plain(id), plain(ref), typ},
		})
	}
	return rows
}
