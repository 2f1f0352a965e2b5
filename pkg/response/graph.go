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

const shapeGraph = "graph"

// Entity fields written by the engine.
const (
	fieldIdentity   = "identity"
	fieldLabel      = "label"
	fieldProperties = "properties"
	fieldStart      = "start"
	fieldEnd        = "end"
)

// GraphResponse serves one GraphModel per result element.
type GraphResponse struct {
	sliceResponse[*model.GraphModel]
}

// NewGraphResponse decodes raw into graph models. Every object value of an
// element is a node, or a relationship when it has a start field; lists are
// searched for entities and scalars are ignored.
func NewGraphResponse(raw string) (*GraphResponse, error) {
	elems, err := elements(shapeGraph, raw)
	if err != nil {
		return nil, err
	}
	graphs := make([]*model.GraphModel, 0, len(elems))
	for i, e := range elems {
		obj, ok := e.(*object)
		if !ok {
			return nil, decodeErr(shapeGraph, "element %d is %T, not an object", i, e)
		}
		g := model.NewGraphModel()
		for _, k := range obj.keys {
			if err := addEntities(g, obj.values[k]); err != nil {
				return nil, &DecodeError{Shape: shapeGraph, Err: fmt.Errorf("element %d, column %q: %w", i, k, err)}
			}
		}
		graphs = append(graphs, g)
	}
	return &GraphResponse{sliceResponse[*model.GraphModel]{items: graphs}}, nil
}

func addEntities(g *model.GraphModel, v any) error {
	switch x := v.(type) {
	case *object:
		return addEntity(g, x)
	case []any:
		for _, e := range x {
			if err := addEntities(g, e); err != nil {
				return err
			}
		}
	}
	return nil
}

func addEntity(g *model.GraphModel, o *object) error {
	if o.has(fieldStart) {
		rel, err := relationshipFrom(o)
		if err != nil {
			return err
		}
		g.AddRelationship(rel)
		return nil
	}
	node, err := nodeFrom(o)
	if err != nil {
		return err
	}
	g.AddNode(node)
	return nil
}

func nodeFrom(o *object) (*model.NodeModel, error) {
	id, err := idField(o, fieldIdentity)
	if err != nil {
		return nil, err
	}
	node := model.NewNodeModel(id)
	node.Labels = []string{}
	if label, ok := o.values[fieldLabel].(string); ok {
		node.Labels = []string{label}
	}
	node.Properties, err = propertiesField(o)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func relationshipFrom(o *object) (*model.RelationshipModel, error) {
	id, err := idField(o, fieldIdentity)
	if err != nil {
		return nil, err
	}
	start, err := idField(o, fieldStart)
	if err != nil {
		return nil, err
	}
	end, err := idField(o, fieldEnd)
	if err != nil {
		return nil, err
	}
	props, err := propertiesField(o)
	if err != nil {
		return nil, err
	}
	rel := &model.RelationshipModel{ID: id, StartNode: start, EndNode: end, Properties: props}
	if label, ok := o.values[fieldLabel].(string); ok {
		rel.Type = label
	}
	return rel, nil
}

func idField(o *object, key string) (int64, error) {
	v, ok := o.values[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	id, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("%s is %v, not an integer", key, v)
	}
	if id < 0 {
		return 0, fmt.Errorf("%s is negative: %d", key, id)
	}
	return id, nil
}

func propertiesField(o *object) (map[string]any, error) {
	switch p := o.values[fieldProperties].(type) {
	case nil:
		return map[string]any{}, nil
	case *object:
		return plain(p).(map[string]any), nil
	default:
		return nil, fmt.Errorf("properties is %T, not an object", p)
	}
}
