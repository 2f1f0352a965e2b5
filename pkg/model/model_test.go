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

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphModel_Dedup(t *testing.T) {
	g := NewGraphModel()

	assert.True(t, g.AddNode(&NodeModel{ID: 1, Labels: []string{"Person"}}))
	assert.False(t, g.AddNode(&NodeModel{ID: 1, Labels: []string{"Other"}}))
	assert.True(t, g.AddNode(&NodeModel{ID: 2}))

	// Node and relationship ids live in separate spaces.
	assert.True(t, g.AddRelationship(&RelationshipModel{ID: 1, StartNode: 1, EndNode: 2, Type: "KNOWS"}))
	assert.False(t, g.AddRelationship(&RelationshipModel{ID: 1}))

	require.Len(t, g.Nodes(), 2)
	require.Len(t, g.Relationships(), 1)
	assert.Equal(t, []string{"Person"}, g.FindNode(1).Labels)
	assert.Nil(t, g.FindNode(3))
	assert.Equal(t, "KNOWS", g.FindRelationship(1).Type)
}

func TestGraphModel_IsNativeEntity(t *testing.T) {
	g := NewGraphModel()
	g.AddNode(&NodeModel{ID: 1})
	g.AddNode(&NodeModel{ID: 2, GeneratedNode: true})
	g.AddRelationship(&RelationshipModel{ID: 9})

	assert.True(t, g.IsNativeEntity(1))
	assert.False(t, g.IsNativeEntity(2))
	assert.True(t, g.IsNativeEntity(9))
	assert.False(t, g.IsNativeEntity(42))
}

func TestNewRowModel(t *testing.T) {
	row, err := NewRowModel([]string{"a", "b"}, []any{int64(1), "x"})
	require.NoError(t, err)

	v, ok := row.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = row.Get("missing")
	assert.False(t, ok)

	_, err = NewRowModel([]string{"a"}, nil)
	assert.Error(t, err)
}

func TestNewStatement_CopiesParameters(t *testing.T) {
	params := map[string]any{"id": int64(1)}
	stmt := NewStatement("MATCH (n) RETURN n", params)
	params["id"] = int64(2)

	assert.Equal(t, int64(1), stmt.Parameters["id"])
	assert.False(t, stmt.IsEmpty())
	assert.True(t, Statement{}.IsEmpty())
}

func TestGraphModel_MarshalJSON(t *testing.T) {
	g := NewGraphModel()
	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"relationships":[]}`, string(data))

	g.AddNode(&NodeModel{ID: 1, Labels: []string{"Person"}, Properties: map[string]any{"name": "Ann"}})
	g.AddRelationship(&RelationshipModel{ID: 5, Type: "KNOWS", StartNode: 1, EndNode: 1})
	data, err = json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nodes":[{"id":1,"labels":["Person"],"properties":{"name":"Ann"}}],
		"relationships":[{"id":5,"type":"KNOWS","start_node":1,"end_node":1,"properties":null}]
	}`, string(data))
}
