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

import "github.com/kraklabs/tgbridge/pkg/model"

const shapeRest = "rest"

// RestResponse serves one RestModel per result element, plus the statistics
// found in the raw text.
type RestResponse struct {
	sliceResponse[model.RestModel]
	stats model.QueryStatistics
}

// NewRestResponse decodes raw into RestModels. Elements that are not
// non-empty objects are kept as nil placeholders so positions line up.
func NewRestResponse(raw string) (*RestResponse, error) {
	resp := &RestResponse{stats: AdaptStatistics(raw)}
	elems, err := elements(shapeRest, raw)
	if err != nil {
		return nil, err
	}

	models := make([]model.RestModel, len(elems))
	for i, e := range elems {
		obj, ok := e.(*object)
		if !ok || len(obj.keys) == 0 {
			continue
		}
		models[i] = model.RestModel(plain(obj).(map[string]any))
	}
	resp.items = models
	return resp, nil
}

// Statistics returns the counters parsed from the raw result text.
func (r *RestResponse) Statistics() model.QueryStatistics {
	return r.stats
}

// EmptyRestResponse returns a RestResponse with no models and zero counters.
func EmptyRestResponse() *RestResponse {
	return &RestResponse{}
}
