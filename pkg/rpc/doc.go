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

// Package rpc sends literal query text to a TuGraph engine and returns the
// raw result text.
//
// Two transports implement Client:
//
//   - GRPCClient calls the unary method /tugraph.rpc.CypherService/Call.
//     A list of addresses is balanced round-robin.
//   - HTTPClient posts to the gateway endpoint <base>/cypher.
//
// Calls block until the engine answers or the timeout expires. Nothing is
// retried. Every failure is returned as an *EngineQueryError classified as a
// client, database or transient error.
//
// RegisterCypherService and NewHTTPHandler expose a Handler over the same two
// protocols, which is how stub engines are built in tests.
package rpc
