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

package cypher

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kraklabs/tgbridge/pkg/model"
)

const (
	collectionProjection = "RETURN n,["
	projectionHead       = "RETURN n"
	idSuffix             = ", id(n)"
)

// Rewrite turns a parameterized statement into literal query text.
//
// Statements without parameters pass through the write and update paths
// unchanged. Negative ids are rejected with an InvalidIdentifierError before
// any text is produced.
func Rewrite(text string, params map[string]any) (string, error) {
	kind := Classify(text)

	var (
		out string
		err error
	)
	switch kind {
	case KindCreate, KindMerge:
		out, err = rewriteWrite(kind, text, params)
	case KindDelete:
		out, err = rewriteDelete(text, params)
	case KindUpdate:
		out, err = rewriteUpdate(text, params)
	default:
		out, err = rewriteMatch(text, params)
	}
	if err != nil {
		var te *TranslationError
		if errors.As(err, &te) {
			te.Kind = kind
		}
		return "", err
	}
	return out, nil
}

func rewriteWrite(kind Kind, text string, params map[string]any) (string, error) {
	if len(params) == 0 {
		return text, nil
	}
	label, err := ExtractLabel(text)
	if err != nil {
		return "", err
	}
	rows, err := rowsParam(params)
	if err != nil {
		return "", err
	}
	if !strings.Contains(text, "-[") {
		return createNodes(label, typeParam(params), rows)
	}
	if len(rows) == 0 {
		return "", &TranslationError{Kind: kind, Reason: "relationship creation needs at least one row"}
	}
	return createRelationships(label, rows)
}

func createNodes(label, typ string, rows []map[string]any) (string, error) {
	var create, refs, ids strings.Builder
	for i, row := range rows {
		props, err := Properties(row[model.ParamProps])
		if err != nil {
			return "", err
		}
		ref, err := Literal(row[model.ParamNodeRef])
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&create, "CREATE (n%d:%s%s)\n", i, label, props)
		fmt.Fprintf(&refs, "%s AS ref%d,", ref, i)
		fmt.Fprintf(&ids, "id(n%d) AS id%d,", i, i)
	}
	return create.String() + "RETURN " + refs.String() + ids.String() + `"` + typ + `" AS type`, nil
}

func createRelationships(label string, rows []map[string]any) (string, error) {
	var match, where, merge strings.Builder
	match.WriteString("MATCH ")
	where.WriteString(" WHERE ")
	for i, row := range rows {
		start, err := idParam(row, model.ParamStartNodeID, i)
		if err != nil {
			return "", err
		}
		end, err := idParam(row, model.ParamEndNodeID, i)
		if err != nil {
			return "", err
		}
		props, err := Properties(row[model.ParamProps])
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&match, "(startNode%d),(endNode%d),", i, i)
		fmt.Fprintf(&where, "id(startNode%d) = %d AND id(endNode%d) = %d AND ", i, start, i, end)
		fmt.Fprintf(&merge, " MERGE (startNode%d)-[rel%d:%s%s]->(endNode%d) \n ", i, i, label, props, i)
	}
	return strings.TrimSuffix(match.String(), ",") +
		strings.TrimSuffix(where.String(), "AND ") +
		merge.String(), nil
}

func rewriteDelete(text string, params map[string]any) (string, error) {
	out := strings.ReplaceAll(text, "`", "")
	out = strings.ReplaceAll(out, "OPTIONAL MATCH", "WITH n OPTIONAL MATCH")
	if len(params) == 0 {
		return out, nil
	}
	if v, ok := params[model.ParamID]; ok {
		id, ok := asInt64(v)
		if !ok || id < 0 {
			return "", &InvalidIdentifierError{Param: model.ParamID, Row: -1, Value: v}
		}
		out = strings.ReplaceAll(out, "ID(n) = $id", "id(n) = "+strconv.FormatInt(id, 10))
	}
	return substitute(out, params)
}

func rewriteUpdate(text string, params map[string]any) (string, error) {
	if len(params) == 0 {
		return text, nil
	}
	rows, err := rowsParam(params)
	if err != nil {
		return "", err
	}
	typ := typeParam(params)

	// Relationship updates are compiled against the variable [r].
	idKey, pattern := model.ParamNodeID, "MATCH (n)"
	if strings.Contains(text, "[r]") {
		idKey, pattern = model.ParamRelID, "MATCH ()-[n]->()"
	}

	var b strings.Builder
	for i, row := range rows {
		sets, err := setClauses(row[model.ParamProps])
		if err != nil {
			return "", err
		}
		id, err := idParam(row, idKey, i)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s WHERE id(n) = %d%s RETURN %d AS ref,id(n) AS id, \"%s\" AS type\n", pattern, id, sets, id, typ)
	}
	return b.String(), nil
}

func rewriteMatch(text string, params map[string]any) (string, error) {
	out := strings.ReplaceAll(text, "`", "")
	out = strings.ReplaceAll(out, "ID(", "id(")
	out, err := substitute(out, params)
	if err != nil {
		return "", err
	}
	if idx := strings.Index(out, collectionProjection); idx >= 0 {
		suffix := ""
		if strings.HasSuffix(out, idSuffix) {
			suffix = idSuffix
		}
		out = out[:idx+len(projectionHead)] + suffix
	}
	return out, nil
}

// substitute replaces $key and {key} placeholders with literals in a single
// pass over text, so inserted literals are never rescanned. Longer keys are
// tried first so that $ids is never clobbered by $id.
func substitute(text string, params map[string]any) (string, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return text, nil
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	alt := strings.Join(quoted, "|")
	re := regexp.MustCompile(`\$(` + alt + `)\b|\{\s*(` + alt + `)\s*\}`)

	literals := make(map[string]string, len(keys))
	var firstErr error
	out := re.ReplaceAllStringFunc(text, func(m string) string {
		if firstErr != nil {
			return m
		}
		sub := re.FindStringSubmatch(m)
		k := sub[1]
		if k == "" {
			k = sub[2]
		}
		if lit, ok := literals[k]; ok {
			return lit
		}
		lit, err := Literal(params[k])
		if err != nil {
			firstErr = err
			return m
		}
		literals[k] = lit
		return lit
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

var placeholderPattern = regexp.MustCompile(`\$[A-Za-z_]\w*`)

// UnboundPlaceholders lists $name placeholders still present in text.
func UnboundPlaceholders(text string) []string {
	return placeholderPattern.FindAllString(text, -1)
}

func rowsParam(params map[string]any) ([]map[string]any, error) {
	raw, ok := params[model.ParamRows]
	if !ok {
		return nil, &TranslationError{Reason: "missing rows parameter"}
	}
	list, ok := asList(raw)
	if !ok {
		return nil, &TranslationError{Reason: fmt.Sprintf("rows must be a list, got %T", raw)}
	}
	rows := make([]map[string]any, len(list))
	for i, e := range list {
		m, ok := asMap(e)
		if !ok {
			return nil, &TranslationError{Reason: fmt.Sprintf("row %d must be a map, got %T", i, e)}
		}
		rows[i] = m
	}
	return rows, nil
}

func typeParam(params map[string]any) string {
	switch v := params[model.ParamType].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func idParam(row map[string]any, key string, i int) (int64, error) {
	v := row[key]
	id, ok := asInt64(v)
	if !ok || id < 0 {
		return 0, &InvalidIdentifierError{Param: key, Row: i, Value: v}
	}
	return id, nil
}
