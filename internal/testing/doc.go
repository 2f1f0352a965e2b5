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

// Package testing provides stub TuGraph engines for tests.
//
// A StubEngine answers literal queries from a table and records what it
// received. It can be served over either transport:
//
//	func TestMyFeature(t *testing.T) {
//	    engine := testing.NewStubEngine().
//	        On(`MATCH (n) WHERE id(n) = 1 RETURN n`, `{"n":{"identity":1,"label":"A"}}`)
//
//	    client := testing.SetupGRPCEngine(t, engine)   // in-memory gRPC
//	    // or: client := testing.SetupHTTPEngine(t, engine)
//
//	    req := request.New(client)
//	    // ...
//	    require.Equal(t, []string{`MATCH (n) WHERE id(n) = 1 RETURN n`}, engine.Queries())
//	}
//
// ServeGRPC listens on a real loopback port, for code that dials by address
// such as the driver's list:// URIs.
//
// All servers and clients are closed through t.Cleanup.
package testing
