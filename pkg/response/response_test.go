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
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/tgbridge/pkg/cypher"
	"github.com/kraklabs/tgbridge/pkg/model"
)

func TestNewGraphResponse(t *testing.T) {
	raw := `[{"n":{"identity":1,"label":"Person","properties":{"name":"Alice"}},` +
		`"r":{"identity":7,"start":1,"end":2,"label":"KNOWS","properties":{"since":2020}},` +
		`"m":{"identity":2,"label":"Person","properties":{"name":"Bob"}}},` +
		`{"n":{"identity":1,"label":"Person","properties":{"name":"Alice"}}}]`

	resp, err := NewGraphResponse(raw)
	require.NoError(t, err)
	defer resp.Close()

	g, ok := resp.Next()
	require.True(t, ok)
	require.Len(t, g.Nodes(), 2)
	require.Len(t, g.Relationships(), 1)

	alice := g.FindNode(1)
	require.NotNil(t, alice)
	assert.Equal(t, []string{"Person"}, alice.Labels)
	assert.Equal(t, "Alice", alice.Properties["name"])

	rel := g.Relationships()[0]
	assert.Equal(t, int64(7), rel.ID)
	assert.Equal(t, int64(1), rel.StartNode)
	assert.Equal(t, int64(2), rel.EndNode)
	assert.Equal(t, "KNOWS", rel.Type)
	assert.Equal(t, int64(2020), rel.Properties["since"])

	g, ok = resp.Next()
	require.True(t, ok)
	assert.Len(t, g.Nodes(), 1)

	_, ok = resp.Next()
	assert.False(t, ok)
	assert.Empty(t, resp.Columns())
}

func TestNewGraphResponse_SingleObject(t *testing.T) {
	resp, err := NewGraphResponse(`{"n":{"identity":3,"label":"Movie","properties":{}}}`)
	require.NoError(t, err)

	graphs := Collect[*model.GraphModel](resp)
	require.Len(t, graphs, 1)
	assert.Equal(t, int64(3), graphs[0].Nodes()[0].ID)
}

func TestNewGraphResponse_NestedListsAndScalars(t *testing.T) {
	raw := `{"n":{"identity":1,"label":"A"},"path":[{"identity":2,"label":"B"},{"identity":5,"start":1,"end":2,"label":"R"}],"count":3}`

	resp, err := NewGraphResponse(raw)
	require.NoError(t, err)

	g, ok := resp.Next()
	require.True(t, ok)
	assert.Len(t, g.Nodes(), 2)
	assert.Len(t, g.Relationships(), 1)
	assert.Empty(t, g.Nodes()[0].Properties)
}

func TestNewGraphResponse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"malformed", `{"n":`},
		{"scalar", `42`},
		{"missing identity", `{"n":{"label":"A"}}`},
		{"negative identity", `{"n":{"identity":-1,"label":"A"}}`},
		{"trailing data", `{"n":{"identity":1}} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraphResponse(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDecode))
		})
	}
}

func TestNullResult(t *testing.T) {
	g, err := NewGraphResponse("null")
	require.NoError(t, err)
	_, ok := g.Next()
	assert.False(t, ok)

	r, err := NewRowResponse(" null\n")
	require.NoError(t, err)
	_, ok = r.Next()
	assert.False(t, ok)
	assert.Empty(t, r.Columns())

	gr, err := NewGraphRowResponse("null")
	require.NoError(t, err)
	_, ok = gr.Next()
	assert.False(t, ok)

	rest, err := NewRestResponse("null")
	require.NoError(t, err)
	_, ok = rest.Next()
	assert.False(t, ok)
	assert.Equal(t, model.QueryStatistics{}, rest.Statistics())
}

func TestNewRowResponse_Array(t *testing.T) {
	resp, err := NewRowResponse(`[{"name":"Alice","age":30},{"name":"Bob","age":31.5}]`)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, resp.Columns())

	rows := Collect[*model.RowModel](resp)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"name", "age"}, rows[0].Variables)
	assert.Equal(t, []any{"Alice", int64(30)}, rows[0].Values)
	assert.Equal(t, []any{"Bob", 31.5}, rows[1].Values)
}

func TestNewRowResponse_BatchedCreate(t *testing.T) {
	resp, err := NewRowResponse(`{"ref0":-1,"ref1":-2,"id0":10,"id1":11,"type":"node"}`)
	require.NoError(t, err)

	rows := Collect[*model.RowModel](resp)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "ref", "type"}, rows[0].Variables)
	assert.Equal(t, []any{int64(10), int64(-1), "node"}, rows[0].Values)
	assert.Equal(t, []any{int64(11), int64(-2), "node"}, rows[1].Values)
}

func TestNewRowResponse_SingleObject(t *testing.T) {
	resp, err := NewRowResponse(`{"count":5,"meta":{"a":[1,2]}}`)
	require.NoError(t, err)

	row, ok := resp.Next()
	require.True(t, ok)
	assert.Equal(t, []string{"count", "meta"}, row.Variables)
	assert.Equal(t, int64(5), row.Values[0])
	assert.Equal(t, map[string]any{"a": []any{int64(1), int64(2)}}, row.Values[1])
}

func TestNewRowResponse_LargeIntegersStayExact(t *testing.T) {
	resp, err := NewRowResponse(`{"id":9007199254740993}`)
	require.NoError(t, err)

	row, ok := resp.Next()
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), row.Values[0])
}

func TestNewGraphRowResponse(t *testing.T) {
	raw := `[{"n":{"identity":1,"label":"Person","properties":{"name":"A"}},"cnt":2,"tags":["x"]},` +
		`{"n":{"identity":2,"label":"Person","properties":{"name":"B"}},"cnt":0,"tags":[]}]`

	resp, err := NewGraphRowResponse(raw)
	require.NoError(t, err)

	lists := Collect[*model.GraphRowListModel](resp)
	require.Len(t, lists, 1)
	require.Len(t, lists[0].Models, 2)

	first := lists[0].Models[0]
	assert.Equal(t, int64(1), first.Graph.Nodes()[0].ID)
	assert.Equal(t, []any{int64(2), []any{"x"}}, first.Row)

	second := lists[0].Models[1]
	assert.Equal(t, int64(2), second.Graph.Nodes()[0].ID)
	assert.Equal(t, []any{int64(0), []any{}}, second.Row)
}

func TestNewRestResponse(t *testing.T) {
	resp, err := NewRestResponse(`[{"name":"A"},{},7,{"n":{"identity":1}}]`)
	require.NoError(t, err)

	models := Collect[model.RestModel](resp)
	require.Len(t, models, 4)
	assert.Equal(t, model.RestModel{"name": "A"}, models[0])
	assert.Nil(t, models[1])
	assert.Nil(t, models[2])
	assert.Equal(t, map[string]any{"identity": int64(1)}, models[3]["n"])
}

func TestNewRestResponse_ObjectWithList(t *testing.T) {
	resp, err := NewRestResponse(`{"names":["a","b"]}`)
	require.NoError(t, err)

	m, ok := resp.Next()
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, m["names"])
}

func TestNewRestResponse_ShapeFromParsedValue(t *testing.T) {
	resp, err := NewRestResponse("\n\t {\"n\":1}\n")
	require.NoError(t, err)
	models := Collect[model.RestModel](resp)
	require.Len(t, models, 1)
	assert.Equal(t, model.RestModel{"n": int64(1)}, models[0])

	resp, err = NewRestResponse("  [{\"n\":1},{\"n\":2}]")
	require.NoError(t, err)
	assert.Len(t, Collect[model.RestModel](resp), 2)

	_, err = NewRestResponse(`"text"`)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestAdaptStatistics(t *testing.T) {
	stats := AdaptStatistics(`{"summary":"created 3 vertices, created 2 edges, set 4 properties, deleted 1 vertices, deleted 5 edges"}`)

	assert.Equal(t, 3, stats.NodesCreated)
	assert.Equal(t, 2, stats.RelationshipsCreated)
	assert.Equal(t, 4, stats.PropertiesSet)
	assert.Equal(t, 1, stats.NodesDeleted)
	assert.Equal(t, 5, stats.RelationshipsDeleted)
	assert.False(t, stats.ContainsUpdates)
	assert.Zero(t, stats.LabelsAdded)
	assert.Zero(t, stats.ConstraintsRemoved)

	assert.Equal(t, model.QueryStatistics{}, AdaptStatistics(`[{"n":1}]`))
}

func TestRestResponse_Statistics(t *testing.T) {
	resp, err := NewRestResponse(`{"result":"deleted 2 vertices"}`)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Statistics().NodesDeleted)
}

func TestResponse_CloseIsIdempotent(t *testing.T) {
	resp, err := NewRowResponse(`[{"a":1},{"a":2}]`)
	require.NoError(t, err)

	_, ok := resp.Next()
	require.True(t, ok)

	resp.Close()
	resp.Close()

	_, ok = resp.Next()
	assert.False(t, ok)
}

func TestResponse_IndependentCursors(t *testing.T) {
	raw := `[{"a":1},{"a":2}]`
	r1, err := NewRowResponse(raw)
	require.NoError(t, err)
	r2, err := NewRowResponse(raw)
	require.NoError(t, err)

	_, _ = r1.Next()
	_, _ = r1.Next()
	_, ok := r1.Next()
	assert.False(t, ok)

	row, ok := r2.Next()
	require.True(t, ok)
	assert.Equal(t, []any{int64(1)}, row.Values)
}

func TestEmptyAndMultiStatement(t *testing.T) {
	e := Empty[*model.RowModel]()
	_, ok := e.Next()
	assert.False(t, ok)
	assert.Empty(t, e.Columns())
	e.Close()

	rows := []*model.RowModel{{Variables: []string{"a"}, Values: []any{int64(1)}}}
	m := NewMultiStatementResponse([]string{"a", "b"}, rows)
	assert.Equal(t, []string{"a", "b"}, m.Columns())
	assert.Len(t, Collect(m), 1)
}

// bareKey matches an unquoted map key in a Cypher map literal.
var bareKey = regexp.MustCompile(`([{,])(\w+):`)

// storedNode plays the engine: it stores the property literal written by
// the rewriter and returns the node the way the engine serializes it.
func storedNode(id int64, label, props string) string {
	if props == "" {
		props = "{}"
	}
	return fmt.Sprintf(`{"n":{"identity":%d,"label":%q,"properties":%s}}`,
		id, label, bareKey.ReplaceAllString(props, `$1"$2":`))
}

func TestGraphResponse_PropertiesRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]any
		want  map[string]any
	}{
		{
			name: "mixed scalars",
			props: map[string]any{
				"name":   "Ann Lee",
				"age":    int64(42),
				"score":  1.5,
				"active": true,
				"gone":   nil,
			},
			want: map[string]any{
				"name":   "Ann Lee",
				"age":    int64(42),
				"score":  1.5,
				"active": true,
			},
		},
		{
			name:  "negative and false",
			props: map[string]any{"delta": int64(-7), "ratio": -0.25, "ok": false},
			want:  map[string]any{"delta": int64(-7), "ratio": -0.25, "ok": false},
		},
		{
			name:  "only nulls",
			props: map[string]any{"a": nil},
			want:  map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, err := cypher.Properties(tt.props)
			require.NoError(t, err)

			resp, err := NewGraphResponse(storedNode(9, "Person", lit))
			require.NoError(t, err)
			graphs := Collect[*model.GraphModel](resp)
			require.Len(t, graphs, 1)

			node := graphs[0].FindNode(9)
			require.NotNil(t, node)
			assert.Equal(t, []string{"Person"}, node.Labels)
			assert.Equal(t, tt.want, node.Properties)
		})
	}
}
