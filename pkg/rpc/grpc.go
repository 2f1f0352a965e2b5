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
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/resolver"
	"google.golang.org/grpc/resolver/manual"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	serviceName = "tugraph.rpc.CypherService"
	callMethod  = "/" + serviceName + "/Call"

	engineCodeKey = "x-engine-code"

	resolverScheme = "tugraph"
	roundRobin     = `{"loadBalancingConfig":[{"round_robin":{}}]}`
)

// Request fields of the Call method.
const (
	fieldQuery   = "query"
	fieldGraph   = "graph"
	fieldTimeout = "timeout"
)

// GRPCClient is a Client over gRPC.
type GRPCClient struct {
	conn  *grpc.ClientConn
	owned bool
	opts  options

	closeOnce sync.Once
	closeErr  error
}

// NewGRPCClient connects to one or more engine addresses ("host:port").
// Connections are established lazily on the first call.
func NewGRPCClient(addrs []string, opts ...Option) (*GRPCClient, error) {
	if len(addrs) == 0 {
		return nil, errors.New("at least one engine address is required")
	}

	r := manual.NewBuilderWithScheme(resolverScheme)
	state := resolver.State{Addresses: make([]resolver.Address, len(addrs))}
	for i, a := range addrs {
		state.Addresses[i] = resolver.Address{Addr: a}
	}
	r.InitialState(state)

	conn, err := grpc.NewClient(resolverScheme+":///engine",
		grpc.WithResolvers(r),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultServiceConfig(roundRobin),
	)
	if err != nil {
		return nil, fmt.Errorf("create grpc client: %w", err)
	}
	return &GRPCClient{conn: conn, owned: true, opts: buildOptions(opts)}, nil
}

// NewGRPCClientFromConn wraps an existing connection. Close leaves conn open.
func NewGRPCClientFromConn(conn *grpc.ClientConn, opts ...Option) *GRPCClient {
	return &GRPCClient{conn: conn, opts: buildOptions(opts)}
}

// CallCypher implements Client.
func (c *GRPCClient) CallCypher(ctx context.Context, query, graph string, timeout time.Duration) (string, error) {
	graph, timeout = normalize(graph, timeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{
		fieldQuery:   query,
		fieldGraph:   graph,
		fieldTimeout: timeout.Seconds(),
	})
	if err != nil {
		return "", &EngineQueryError{Kind: KindClient, Code: "InvalidRequest", Message: err.Error(), Err: err}
	}

	md := metadata.Pairs(requestIDKey, RequestID(ctx))
	if auth := c.opts.creds.authorization(); auth != "" {
		md.Set("authorization", auth)
	}
	ctx = metadata.NewOutgoingContext(ctx, md)

	var trailer metadata.MD
	resp := &wrapperspb.StringValue{}
	if err := c.conn.Invoke(ctx, callMethod, req, resp, grpc.Trailer(&trailer)); err != nil {
		var engineCode string
		if v := trailer.Get(engineCodeKey); len(v) > 0 {
			engineCode = v[0]
		}
		return "", fromGRPC(err, engineCode)
	}
	return resp.GetValue(), nil
}

// Close closes the connection if the client created it.
func (c *GRPCClient) Close() error {
	c.closeOnce.Do(func() {
		if c.owned {
			c.closeErr = c.conn.Close()
		}
	})
	return c.closeErr
}
