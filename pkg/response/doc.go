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

// Package response decodes raw TuGraph result text into the four result
// shapes of the mapping layer.
//
// The engine returns loosely typed JSON: either a single object or an array of
// objects, or the literal text null when there is nothing to report. Each
// decoder parses the whole text eagerly and then hands models out through the
// Response iterator:
//
//	resp, err := response.NewRowResponse(raw)
//	if err != nil {
//	    return err
//	}
//	defer resp.Close()
//	for row, ok := resp.Next(); ok; row, ok = resp.Next() {
//	    fmt.Println(row.Variables, row.Values)
//	}
//
// Integers decode as exact int64 values and object key order is preserved, so
// row variables come out in the order the engine wrote them.
package response
