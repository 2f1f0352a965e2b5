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

const shapeGraphRow = "graph-row"

// GraphRowResponse serves a single GraphRowListModel holding one graph/row
// pair per result element.
type GraphRowResponse struct {
	sliceResponse[*model.GraphRowListModel]
}

// NewGraphRowResponse splits every element into entities (object values) and
// row values (everything else).
func NewGraphRowResponse(raw string) (*GraphRowResponse, error) {
	elems, err := elements(shapeGraphRow, raw)
	if err != nil {
		return nil, err
	}
	resp := &GraphRowResponse{}
	if elems == nil {
		return resp, nil
	}

	list := &model.GraphRowListModel{}
	for i, e := range elems {
		obj, ok := e.(*object)
		if !ok {
			return nil, decodeErr(shapeGraphRow, "element %d is %T, not an object", i, e)
		}
		g := model.NewGraphModel()
		row := []any{}
		for _, k := range obj.keys {
			v := obj.values[k]
			if entity, ok := v.(*object); ok {
				if err := addEntity(g, entity); err != nil {
					return nil, &DecodeError{Shape: shapeGraphRow, Err: fmt.Errorf("element %d, column %q: %w", i, k, err)}
				}
				continue
			}
			row = append(row, plain(v))
		}
		list.Add(&model.GraphRowModel{Graph: g, Row: row})
	}
	resp.items = []*model.GraphRowListModel{list}
	return resp, nil
}
