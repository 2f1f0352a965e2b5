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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const nullResult = "null"

// object is a decoded JSON object that remembers key order.
type object struct {
	keys   []string
	values map[string]any
}

func (o *object) has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// parse decodes raw into *object, []any, string, int64, float64, bool or nil.
func parse(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty result text")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after result value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected %q", t)
	case json.Number:
		return number(t), nil
	default:
		return t, nil
	}
}

func decodeObject(dec *json.Decoder) (*object, error) {
	obj := &object{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		if _, dup := obj.values[key]; !dup {
			obj.keys = append(obj.keys, key)
		}
		obj.values[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	list := []any{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return list, nil
}

func number(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// plain converts ordered objects into ordinary maps, recursively.
func plain(v any) any {
	switch x := v.(type) {
	case *object:
		m := make(map[string]any, len(x.keys))
		for _, k := range x.keys {
			m[k] = plain(x.values[k])
		}
		return m
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

// top parses raw, returning nil for the null result.
func top(shape, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == nullResult {
		return nil, nil
	}
	v, err := parse(raw)
	if err != nil {
		return nil, &DecodeError{Shape: shape, Err: err}
	}
	return v, nil
}

// elements parses raw and normalizes a single object into a one-element list.
// It returns nil for the null result.
func elements(shape, raw string) ([]any, error) {
	v, err := top(shape, raw)
	if err != nil || v == nil {
		return nil, err
	}
	switch x := v.(type) {
	case []any:
		return x, nil
	case *object:
		return []any{x}, nil
	default:
		return nil, decodeErr(shape, "expected object or array, got %T", v)
	}
}
