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
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Literal returns the query-text form of v: strings double-quoted, nil as
// null, numbers and booleans bare, lists as [a,b] and maps as {k:v}.
func Literal(v any) (string, error) {
	var b strings.Builder
	if err := writeLiteral(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeLiteral(b *strings.Builder, v any) error {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteByte('"')
		b.WriteString(x)
		b.WriteByte('"')
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int8:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int16:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case uint:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint16:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(x, 10))
	case float32:
		return writeFloat(b, float64(x), 32)
	case float64:
		return writeFloat(b, x, 64)
	case json.Number:
		b.WriteString(x.String())
	case []any:
		return writeList(b, x)
	case map[string]any:
		return writeMap(b, x)
	default:
		if list, ok := asList(v); ok {
			return writeList(b, list)
		}
		if m, ok := asMap(v); ok {
			return writeMap(b, m)
		}
		return &TranslationError{Reason: fmt.Sprintf("unsupported parameter type %T", v)}
	}
	return nil
}

func writeFloat(b *strings.Builder, f float64, bits int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &TranslationError{Reason: fmt.Sprintf("no literal form for %v", f)}
	}
	b.WriteString(strconv.FormatFloat(f, 'f', -1, bits))
	return nil
}

func writeList(b *strings.Builder, list []any) error {
	b.WriteByte('[')
	for i, e := range list {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeLiteral(b, e); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

func writeMap(b *strings.Builder, m map[string]any) error {
	b.WriteByte('{')
	for i, k := range sortedKeys(m) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte(':')
		if err := writeLiteral(b, m[k]); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

// Properties renders an inline property map such as {name:"Alice",age:30}.
// Nil values are skipped; a map with nothing left renders as "".
func Properties(props any) (string, error) {
	if props == nil {
		return "", nil
	}
	m, ok := asMap(props)
	if !ok {
		return "", &TranslationError{Reason: fmt.Sprintf("props must be a map, got %T", props)}
	}
	var b strings.Builder
	for _, k := range sortedKeys(m) {
		if m[k] == nil {
			continue
		}
		if b.Len() == 0 {
			b.WriteByte('{')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte(':')
		if err := writeLiteral(&b, m[k]); err != nil {
			return "", err
		}
	}
	if b.Len() == 0 {
		return "", nil
	}
	b.WriteByte('}')
	return b.String(), nil
}

// setClauses renders props as a sequence of ` SET n.key = value` fragments.
func setClauses(props any) (string, error) {
	if props == nil {
		return "", nil
	}
	m, ok := asMap(props)
	if !ok {
		return "", &TranslationError{Kind: KindUpdate, Reason: fmt.Sprintf("props must be a map, got %T", props)}
	}
	var b strings.Builder
	for _, k := range sortedKeys(m) {
		if m[k] == nil {
			continue
		}
		b.WriteString(" SET n.")
		b.WriteString(k)
		b.WriteString(" = ")
		if err := writeLiteral(&b, m[k]); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asMap accepts map[string]any and any other map keyed by strings.
func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

// asList accepts []any and any other slice or array except []byte.
func asList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	l := make([]any, rv.Len())
	for i := range l {
		l[i] = rv.Index(i).Interface()
	}
	return l, true
}

// asInt64 converts integer-valued parameters. Floats are accepted when they
// hold a whole number, which is what JSON-decoded ids look like.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > 1<<53 {
			return 0, false
		}
		return int64(x), true
	case json.Number:
		n, err := x.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
