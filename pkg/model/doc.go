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

// Package model holds the value types exchanged between the object-mapping
// layer and the TuGraph bridge.
//
// A Statement is what the mapping layer hands to the bridge: query text with
// named placeholders plus the parameter map. Everything else in this package
// is what the bridge hands back after decoding the engine's JSON output:
//
//   - GraphModel: nodes and relationships keyed by native id
//   - RowModel: parallel variable names and values
//   - GraphRowListModel: graph/row pairs for mixed projections
//   - RestModel: a plain column-name to value map
//   - QueryStatistics: counters parsed from mutation summaries
//
// Native ids are int64 values assigned by the engine. A decoded model never
// carries a negative id.
package model
