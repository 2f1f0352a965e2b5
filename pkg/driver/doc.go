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

// Package driver is the entry point for talking to a TuGraph engine.
//
// A Driver owns one transport, chosen by the scheme of the configured URI:
//
//	list://host1:9090,host2:9090   gRPC, round-robin across the hosts
//	http://host:7070               HTTP gateway
//	https://host:7070              HTTP gateway over TLS
//
// The transport is created on first use unless VerifyConnection is set.
// Requests returned by Driver.Request share it and are safe for concurrent use.
//
// The engine is not transactional. Transactions exist so callers written
// against transactional drivers keep working; Commit and Rollback only track
// status.
package driver
