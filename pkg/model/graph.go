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

import "encoding/json"

// NodeModel is a decoded vertex.
type NodeModel struct {
	ID         int64          `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`

	// GeneratedNode marks nodes synthesized by the engine rather than stored.
	GeneratedNode bool `json:"generated_node,omitempty"`
}

// NewNodeModel returns a node with the given id and an empty property map.
func NewNodeModel(id int64) *NodeModel {
	return &NodeModel{ID: id, Properties: map[string]any{}}
}

// RelationshipModel is a decoded edge.
type RelationshipModel struct {
	ID         int64          `json:"id"`
	Type       string         `json:"type"`
	StartNode  int64          `json:"start_node"`
	EndNode    int64          `json:"end_node"`
	Properties map[string]any `json:"properties"`
}

// GraphModel is the set of nodes and relationships decoded from one result
// element. Entities are keyed by native id and kept in insertion order.
type GraphModel struct {
	nodes     []*NodeModel
	rels      []*RelationshipModel
	nodeIndex map[int64]*NodeModel
	relIndex  map[int64]*RelationshipModel
}

// NewGraphModel returns an empty graph.
func NewGraphModel() *GraphModel {
	return &GraphModel{
		nodeIndex: make(map[int64]*NodeModel),
		relIndex:  make(map[int64]*RelationshipModel),
	}
}

// AddNode adds n unless a node with the same id is already present.
// It reports whether n was added.
func (g *GraphModel) AddNode(n *NodeModel) bool {
	if _, ok := g.nodeIndex[n.ID]; ok {
		return false
	}
	g.nodeIndex[n.ID] = n
	g.nodes = append(g.nodes, n)
	return true
}

// AddRelationship adds r unless a relationship with the same id is already
// present. It reports whether r was added.
func (g *GraphModel) AddRelationship(r *RelationshipModel) bool {
	if _, ok := g.relIndex[r.ID]; ok {
		return false
	}
	g.relIndex[r.ID] = r
	g.rels = append(g.rels, r)
	return true
}

// FindNode returns the node with the given id, or nil.
func (g *GraphModel) FindNode(id int64) *NodeModel {
	return g.nodeIndex[id]
}

// FindRelationship returns the relationship with the given id, or nil.
func (g *GraphModel) FindRelationship(id int64) *RelationshipModel {
	return g.relIndex[id]
}

// Nodes returns the nodes in insertion order.
func (g *GraphModel) Nodes() []*NodeModel {
	return g.nodes
}

// Relationships returns the relationships in insertion order.
func (g *GraphModel) Relationships() []*RelationshipModel {
	return g.rels
}

// IsNativeEntity reports whether id names a relationship or a stored
// (non-generated) node of this graph.
func (g *GraphModel) IsNativeEntity(id int64) bool {
	if _, ok := g.relIndex[id]; ok {
		return true
	}
	n, ok := g.nodeIndex[id]
	return ok && !n.GeneratedNode
}

// Empty reports whether the graph has neither nodes nor relationships.
func (g *GraphModel) Empty() bool {
	return len(g.nodes) == 0 && len(g.rels) == 0
}

// MarshalJSON renders the graph as {"nodes": [...], "relationships": [...]}.
func (g *GraphModel) MarshalJSON() ([]byte, error) {
	out := struct {
		Nodes         []*NodeModel         `json:"nodes"`
		Relationships []*RelationshipModel `json:"relationships"`
	}{Nodes: g.nodes, Relationships: g.rels}
	if out.Nodes == nil {
		out.Nodes = []*NodeModel{}
	}
	if out.Relationships == nil {
		out.Relationships = []*RelationshipModel{}
	}
	return json.Marshal(out)
}
