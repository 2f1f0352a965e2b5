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

package testing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/tgbridge/pkg/rpc"
)

func TestStubEngine_Transports(t *testing.T) {
	engine := NewStubEngine().
		On("RETURN 1", `{"1":1}`).
		Fail("BAD", &rpc.EngineQueryError{Kind: rpc.KindClient, Code: "SyntaxError", Message: "bad"})

	clients := map[string]rpc.Client{
		"grpc": SetupGRPCEngine(t, engine),
		"http": SetupHTTPEngine(t, engine),
	}
	for name, client := range clients {
		t.Run(name, func(t *testing.T) {
			out, err := client.CallCypher(context.Background(), "RETURN 1", "g", time.Second)
			require.NoError(t, err)
			assert.Equal(t, `{"1":1}`, out)

			out, err = client.CallCypher(context.Background(), "unknown", "g", time.Second)
			require.NoError(t, err)
			assert.Equal(t, "null", out)

			_, err = client.CallCypher(context.Background(), "BAD", "g", time.Second)
			assert.True(t, errors.Is(err, rpc.ErrClient))
		})
	}

	calls := engine.Calls()
	require.Len(t, calls, 6)
	assert.Equal(t, "g", calls[0].Graph)
	assert.Equal(t, time.Second, calls[0].Timeout)
}

func TestStubEngine_Otherwise(t *testing.T) {
	engine := NewStubEngine().Otherwise(`[]`)

	out, err := engine.Handle(context.Background(), "anything", "", 0)
	require.NoError(t, err)
	assert.Equal(t, `[]`, out)
	assert.Equal(t, []string{"anything"}, engine.Queries())
}

func TestServeGRPC(t *testing.T) {
	engine := NewStubEngine().On("RETURN 1", "[]")
	addr := ServeGRPC(t, engine)

	client, err := rpc.NewGRPCClient([]string{addr})
	require.NoError(t, err)
	defer client.Close()

	out, err := client.CallCypher(context.Background(), "RETURN 1", "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}
