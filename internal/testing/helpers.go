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
	"net"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/kraklabs/tgbridge/pkg/rpc"
)

// Call is one query received by a StubEngine.
type Call struct {
	Query   string
	Graph   string
	Timeout time.Duration
}

// StubEngine answers literal queries from a fixed table. Unknown queries get
// the fallback result, "null" unless changed with Otherwise.
type StubEngine struct {
	mu       sync.Mutex
	results  map[string]string
	failures map[string]error
	fallback string
	calls    []Call
}

// NewStubEngine returns an engine with no canned results.
func NewStubEngine() *StubEngine {
	return &StubEngine{
		results:  make(map[string]string),
		failures: make(map[string]error),
		fallback: "null",
	}
}

// On makes query return raw.
func (e *StubEngine) On(query, raw string) *StubEngine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results[query] = raw
	return e
}

// Fail makes query return err. Use *rpc.EngineQueryError to control how the
// failure is classified on the client side.
func (e *StubEngine) Fail(query string, err error) *StubEngine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures[query] = err
	return e
}

// Otherwise sets the result for queries without an entry.
func (e *StubEngine) Otherwise(raw string) *StubEngine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fallback = raw
	return e
}

// Handle implements rpc.Handler.
func (e *StubEngine) Handle(_ context.Context, query, graph string, timeout time.Duration) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, Call{Query: query, Graph: graph, Timeout: timeout})
	if err, ok := e.failures[query]; ok {
		return "", err
	}
	if raw, ok := e.results[query]; ok {
		return raw, nil
	}
	return e.fallback, nil
}

// Calls returns every call received so far.
func (e *StubEngine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// Queries returns the query text of every call received so far.
func (e *StubEngine) Queries() []string {
	calls := e.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Query
	}
	return out
}

// SetupHTTPEngine serves engine over the HTTP gateway protocol and returns a
// client for it.
func SetupHTTPEngine(t *testing.T, engine *StubEngine, opts ...rpc.Option) *rpc.HTTPClient {
	t.Helper()

	srv := httptest.NewServer(rpc.NewHTTPHandler(engine.Handle))
	client := rpc.NewHTTPClient(srv.URL, opts...)
	t.Cleanup(func() {
		client.Close()
		srv.Close()
	})
	return client
}

// SetupGRPCEngine serves engine over an in-memory gRPC connection and
// returns a client for it.
func SetupGRPCEngine(t *testing.T, engine *StubEngine, opts ...rpc.Option) *rpc.GRPCClient {
	t.Helper()

	const bufSize = 1024 * 1024
	lis := bufconn.Listen(bufSize)

	srv := grpc.NewServer()
	rpc.RegisterCypherService(srv, engine.Handle)
	go func() {
		if err := srv.Serve(lis); err != nil {
			t.Logf("stub engine exited with error: %v", err)
		}
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial stub engine: %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
		lis.Close()
	})
	return rpc.NewGRPCClientFromConn(conn, opts...)
}

// ServeGRPC serves engine on a loopback TCP port and returns its address.
func ServeGRPC(t *testing.T, engine *StubEngine) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	srv := grpc.NewServer()
	rpc.RegisterCypherService(srv, engine.Handle)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)
	return lis.Addr().String()
}

// ServeHTTP serves engine over the HTTP gateway protocol and returns its
// base URL.
func ServeHTTP(t *testing.T, engine *StubEngine) string {
	t.Helper()

	srv := httptest.NewServer(rpc.NewHTTPHandler(engine.Handle))
	t.Cleanup(srv.Close)
	return srv.URL
}
