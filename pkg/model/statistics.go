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

// QueryStatistics reports what a mutation changed. Counters the engine does
// not report stay zero.
type QueryStatistics struct {
	ContainsUpdates      bool `json:"contains_updates"`
	NodesCreated         int  `json:"nodes_created"`
	NodesDeleted         int  `json:"nodes_deleted"`
	PropertiesSet        int  `json:"properties_set"`
	RelationshipsCreated int  `json:"relationships_created"`
	RelationshipsDeleted int  `json:"relationship_deleted"`
	LabelsAdded          int  `json:"labels_added"`
	LabelsRemoved        int  `json:"labels_removed"`
	IndexesAdded         int  `json:"indexes_added"`
	IndexesRemoved       int  `json:"indexes_removed"`
	ConstraintsAdded     int  `json:"constraints_added"`
	ConstraintsRemoved   int  `json:"constraints_removed"`
}
