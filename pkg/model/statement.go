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

// Well-known parameter keys produced by the statement compiler.
const (
	ParamType        = "type"
	ParamRows        = "rows"
	ParamProps       = "props"
	ParamID          = "id"
	ParamNodeID      = "nodeId"
	ParamRelID       = "relId"
	ParamStartNodeID = "startNodeId"
	ParamEndNodeID   = "endNodeId"
	ParamNodeRef     = "nodeRef"
	ParamRelRef      = "relRef"
)

// Statement is a parameterized query as emitted by the statement compiler.
type Statement struct {
	Text       string
	Parameters map[string]any
}

// NewStatement creates a Statement with its own copy of params.
func NewStatement(text string, params map[string]any) Statement {
	cp := make(map[string]any, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return Statement{Text: text, Parameters: cp}
}

// IsEmpty reports whether the statement has no query text.
func (s Statement) IsEmpty() bool {
	return s.Text == ""
}
