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

import "strings"

// Kind is the statement shape that selects a rewrite path.
type Kind int

const (
	KindMatch Kind = iota
	KindCreate
	KindMerge
	KindDelete
	KindUpdate
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindMerge:
		return "merge"
	case KindDelete:
		return "delete"
	case KindUpdate:
		return "update"
	default:
		return "match"
	}
}

// IsWrite reports whether k takes the batched creation path.
func (k Kind) IsWrite() bool {
	return k == KindCreate || k == KindMerge
}

// Classify returns the shape of text. Keywords are matched case-sensitively
// and the first hit in the order CREATE, MERGE, DELETE, SET wins.
func Classify(text string) Kind {
	switch {
	case strings.Contains(text, "CREATE"):
		return KindCreate
	case strings.Contains(text, "MERGE"):
		return KindMerge
	case strings.Contains(text, "DELETE"):
		return KindDelete
	case strings.Contains(text, "SET"):
		return KindUpdate
	default:
		return KindMatch
	}
}
