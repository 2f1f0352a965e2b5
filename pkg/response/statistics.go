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
	"regexp"
	"strconv"

	"github.com/kraklabs/tgbridge/pkg/model"
)

var (
	nodesDeletedPattern         = regexp.MustCompile(`deleted\s([0-9]+)\svertices`)
	relationshipsDeletedPattern = regexp.MustCompile(`deleted\s([0-9]+)\sedges`)
	nodesCreatedPattern         = regexp.MustCompile(`created\s([0-9]+)\svertices`)
	relationshipsCreatedPattern = regexp.MustCompile(`created\s([0-9]+)\sedges`)
	propertiesSetPattern        = regexp.MustCompile(`set\s([0-9]+)\sproperties`)
)

// AdaptStatistics scans the engine's mutation summary, e.g.
// "created 2 vertices, created 1 edges", for the counters it reports.
// Everything else stays zero and ContainsUpdates is always false.
func AdaptStatistics(raw string) model.QueryStatistics {
	return model.QueryStatistics{
		NodesCreated:         firstCount(nodesCreatedPattern, raw),
		NodesDeleted:         firstCount(nodesDeletedPattern, raw),
		PropertiesSet:        firstCount(propertiesSetPattern, raw),
		RelationshipsCreated: firstCount(relationshipsCreatedPattern, raw),
		RelationshipsDeleted: firstCount(relationshipsDeletedPattern, raw),
	}
}

func firstCount(re *regexp.Regexp, raw string) int {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
