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

package request

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/kraklabs/tgbridge/pkg/cypher"
)

// ParameterConverter normalizes statement parameters before rewriting.
type ParameterConverter interface {
	ConvertParameters(params map[string]any) (map[string]any, error)
}

// ParameterConverterFunc adapts a function to ParameterConverter.
type ParameterConverterFunc func(params map[string]any) (map[string]any, error)

// ConvertParameters implements ParameterConverter.
func (f ParameterConverterFunc) ConvertParameters(params map[string]any) (map[string]any, error) {
	return f(params)
}

// ConvertParameters is the default converter. It reduces values to the forms
// the rewriter encodes: int64, float64, string, bool, nil, json.Number,
// []any and map[string]any. Pointers are dereferenced and times become
// RFC 3339 strings.
func ConvertParameters(params map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(params))
	for k, v := range params {
		cv, err := convertValue(v)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", k, err)
		}
		out[k] = cv
	}
	return out, nil
}

func convertValue(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, bool, int64, float64, json.Number:
		return x, nil
	case float32:
		return strconv.ParseFloat(strconv.FormatFloat(float64(x), 'g', -1, 32), 64)
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	case map[string]any:
		return convertMap(reflect.ValueOf(x))
	case []any:
		return convertList(reflect.ValueOf(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return convertValue(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, unsupported(v, "overflows int64")
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, unsupported(v, "byte slices have no literal form")
		}
		return convertList(rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, unsupported(v, "map keys must be strings")
		}
		return convertMap(rv)
	}
	return nil, unsupported(v, "")
}

func convertList(rv reflect.Value) ([]any, error) {
	out := make([]any, rv.Len())
	for i := range out {
		cv, err := convertValue(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = cv
	}
	return out, nil
}

func convertMap(rv reflect.Value) (map[string]any, error) {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		cv, err := convertValue(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out[iter.Key().String()] = cv
	}
	return out, nil
}

func unsupported(v any, detail string) error {
	reason := fmt.Sprintf("unsupported parameter type %T", v)
	if detail != "" {
		reason += ": " + detail
	}
	return &cypher.TranslationError{Reason: reason}
}
