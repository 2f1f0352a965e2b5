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

import "github.com/kraklabs/tgbridge/pkg/model"

// GraphModelRequest asks for one GraphModel per result element.
type GraphModelRequest struct {
	model.Statement
}

// RowModelRequest asks for RowModels.
type RowModelRequest struct {
	model.Statement
}

// GraphRowListModelRequest asks for graph/row pairs.
type GraphRowListModelRequest struct {
	model.Statement
}

// RestModelRequest asks for generic maps plus statistics.
type RestModelRequest struct {
	model.Statement
}

// DefaultRequest runs several statements and merges their rows.
type DefaultRequest struct {
	Statements []model.Statement
}
