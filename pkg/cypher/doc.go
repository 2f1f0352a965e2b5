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

// Package cypher rewrites parameterized statements into the fully literal
// query text accepted by the TuGraph RPC endpoint.
//
// The engine has no parameter binding, so every placeholder must be inlined
// before a statement is sent. The statement compiler only ever emits five
// statement shapes, and Rewrite recognizes them by substring:
//
//	CREATE ...  node or relationship creation (batched over "rows")
//	MERGE ...   same as CREATE
//	DELETE ...  delete by id, with OPTIONAL MATCH rewritten to WITH n
//	SET ...     property updates by node or relationship id
//	anything    match: placeholders replaced by literals
//
// Classify computes the shape once; Rewrite dispatches on it.
//
// # Literal encoding
//
// Strings are wrapped in double quotes without escaping. Callers must not
// pass strings that contain an unescaped double quote. Maps are rendered with
// sorted keys so the output is deterministic.
//
// Rewrite is a pure function and safe for concurrent use.
package cypher
