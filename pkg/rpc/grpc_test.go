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

package rpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// setupGRPCEngine serves h in memory and returns a client connected to it.
func setupGRPCEngine(t *testing.T, h Handler, opts ...Option) *GRPCClient {
	t.Helper()
	const bufSize = 1024 * 1024
	lis := bufconn.Listen(bufSize)

	srv := grpc.NewServer()
	RegisterCypherService(srv, h)
	go func() {
		if err := srv.Serve(lis); err != nil {
			t.Logf("server exited with error: %v", err)
		}
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
		lis.Close()
	})
	return NewGRPCClientFromConn(conn, opts...)
}

func TestGRPCClient_CallCypher(t *testing.T) {
	var (
		gotQuery, gotGraph string
		gotTimeout         time.Duration
		gotMD              metadata.MD
	)
	client := setupGRPCEngine(t, func(ctx context.Context, query, graph string, timeout time.Duration) (string, error) {
		gotQuery, gotGraph, gotTimeout = query, graph, timeout
		gotMD, _ = metadata.FromIncomingContext(ctx)
		return `[{"n":1}]`, nil
	}, WithCredentials(Credentials{Username: "admin", Password: "secret"}))

	ctx := WithRequestID(context.Background(), "req-1")
	out, err := client.CallCypher(ctx, "MATCH (n) RETURN n", "", 0)
	require.NoError(t, err)

	assert.Equal(t, `[{"n":1}]`, out)
	assert.Equal(t, "MATCH (n) RETURN n", gotQuery)
	assert.Equal(t, DefaultGraph, gotGraph)
	assert.Equal(t, DefaultTimeout, gotTimeout)
	assert.Equal(t, []string{"req-1"}, gotMD.Get(requestIDKey))
	assert.Equal(t, []string{Credentials{Username: "admin", Password: "secret"}.authorization()}, gotMD.Get("authorization"))
}

func TestGRPCClient_EngineError(t *testing.T) {
	client := setupGRPCEngine(t, func(context.Context, string, string, time.Duration) (string, error) {
		return "", &EngineQueryError{Kind: KindClient, Code: "TuGraph.ClientError.Statement.SyntaxError", Message: "bad syntax"}
	})

	_, err := client.CallCypher(context.Background(), "MATCH", "g", time.Second)
	require.Error(t, err)

	var eq *EngineQueryError
	require.ErrorAs(t, err, &eq)
	assert.Equal(t, KindClient, eq.Kind)
	assert.Equal(t, "TuGraph.ClientError.Statement.SyntaxError", eq.Code)
	assert.Equal(t, "bad syntax", eq.Message)
	assert.True(t, errors.Is(err, ErrClient))
	assert.False(t, eq.Temporary())
}

func TestGRPCClient_StatusCodes(t *testing.T) {
	tests := []struct {
		code codes.Code
		want ErrorKind
	}{
		{codes.InvalidArgument, KindClient},
		{codes.Unavailable, KindTransient},
		{codes.Internal, KindDatabase},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			client := setupGRPCEngine(t, func(context.Context, string, string, time.Duration) (string, error) {
				return "", status.Error(tt.code, "boom")
			})
			_, err := client.CallCypher(context.Background(), "RETURN 1", "", 0)

			var eq *EngineQueryError
			require.ErrorAs(t, err, &eq)
			assert.Equal(t, tt.want, eq.Kind)
			assert.Equal(t, tt.code.String(), eq.Code)
		})
	}
}

func TestGRPCClient_Timeout(t *testing.T) {
	client := setupGRPCEngine(t, func(ctx context.Context, _, _ string, _ time.Duration) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	_, err := client.CallCypher(context.Background(), "RETURN 1", "", 50*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransient))
}

func TestNewGRPCClient(t *testing.T) {
	_, err := NewGRPCClient(nil)
	assert.Error(t, err)

	c, err := NewGRPCClient([]string{"127.0.0.1:1", "127.0.0.1:2"})
	require.NoError(t, err)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
