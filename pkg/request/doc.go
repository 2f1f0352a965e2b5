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

// Package request executes mapping-layer requests against a TuGraph engine.
//
// A Request turns each statement into literal query text with
// cypher.Rewrite, sends it through an rpc.Client and decodes the raw result
// into the shape the caller asked for:
//
//	req := request.New(client, request.WithLogger(logger))
//	rows, err := req.ExecuteRow(ctx, request.RowModelRequest{
//	    Statement: model.NewStatement("MATCH (n:Person) WHERE n.name = $name RETURN n.age AS age",
//	        map[string]any{"name": "Alice"}),
//	})
//
// Statements with empty text never reach the engine and yield an empty
// response. Errors from the rewriter (cypher.ErrTranslation,
// cypher.ErrMissingLabel, cypher.ErrInvalidIdentifier), the transport
// (*rpc.EngineQueryError) and the decoders (response.ErrDecode) are returned
// unchanged in kind. Nothing is retried.
//
// Each execution emits an OpenTelemetry span and updates the Prometheus
// metrics registered under the tgbridge_ prefix.
package request
