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

package driver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tgtest "github.com/kraklabs/tgbridge/internal/testing"
	"github.com/kraklabs/tgbridge/pkg/model"
	"github.com/kraklabs/tgbridge/pkg/request"
	"github.com/kraklabs/tgbridge/pkg/response"
	"github.com/kraklabs/tgbridge/pkg/rpc"
)

func TestDriver_GRPCList(t *testing.T) {
	engine := tgtest.NewStubEngine().On("RETURN 1", `[{"1":1}]`)
	addr := tgtest.ServeGRPC(t, engine)

	d, err := New(Config{URI: "list://" + addr, Graph: "g1", TimeoutSeconds: 2})
	require.NoError(t, err)
	defer d.Close()

	rows, err := d.Ping(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1"}, rows[0].Variables)
	assert.Equal(t, []any{int64(1)}, rows[0].Values)

	calls := engine.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "g1", calls[0].Graph)
	assert.Equal(t, int64(2), int64(calls[0].Timeout.Seconds()))
}

func TestDriver_HTTP(t *testing.T) {
	engine := tgtest.NewStubEngine().
		On(`MATCH (n) WHERE id(n) = 4 RETURN n`, `[{"n":{"identity":4,"label":"Person","properties":{"name":"Ann"}}}]`)
	url := tgtest.ServeHTTP(t, engine)

	d, err := New(Config{URI: url, VerifyConnection: true})
	require.NoError(t, err)
	defer d.Close()

	req, err := d.Request()
	require.NoError(t, err)

	resp, err := req.ExecuteGraph(context.Background(), request.GraphModelRequest{
		Statement: model.NewStatement(`MATCH (n) WHERE id(n) = $id RETURN n`, map[string]any{"id": 4}),
	})
	require.NoError(t, err)
	graphs := response.Collect(resp)
	require.Len(t, graphs, 1)
	require.NotNil(t, graphs[0].FindNode(4))
	assert.Equal(t, "Ann", graphs[0].FindNode(4).Properties["name"])
	assert.Equal(t, rpc.DefaultGraph, engine.Calls()[0].Graph)
}

func TestDriver_LazyDial(t *testing.T) {
	var dials int
	var mu sync.Mutex
	engine := tgtest.NewStubEngine()
	client := tgtest.SetupHTTPEngine(t, engine)

	d, err := New(Config{URI: "http://unused"}, WithDialer(func(Config) (rpc.Client, error) {
		mu.Lock()
		defer mu.Unlock()
		dials++
		return client, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 0, dials)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Request()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, dials)
}

func TestDriver_VerifyConnectionDialError(t *testing.T) {
	dialErr := errors.New("refused")
	_, err := New(Config{URI: "http://h", VerifyConnection: true}, WithDialer(func(Config) (rpc.Client, error) {
		return nil, dialErr
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, dialErr))
}

func TestDriver_InvalidConfig(t *testing.T) {
	_, err := New(Config{URI: "bolt://h:1"})
	assert.True(t, errors.Is(err, ErrConfig))
}

type closeCounter struct {
	rpc.Client
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return nil
}

func TestDriver_Close(t *testing.T) {
	client := &closeCounter{}
	d := NewWithClient(Config{URI: "http://h"}, client)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.Equal(t, 1, client.closes)

	_, err := d.Request()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = d.Ping(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = d.BeginTransaction(ReadWrite)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDriver_RequestOptions(t *testing.T) {
	engine := tgtest.NewStubEngine()
	client := tgtest.SetupGRPCEngine(t, engine)
	d := NewWithClient(Config{}, client, WithRequestOptions(
		request.WithCypherModification(func(s string) string { return s + " LIMIT 1" }),
	))

	_, err := d.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"RETURN 1 LIMIT 1"}, engine.Queries())
}

func TestTransaction(t *testing.T) {
	d := NewWithClient(Config{}, &closeCounter{})

	tx, err := d.BeginTransaction(ReadOnly)
	require.NoError(t, err)
	assert.Equal(t, ReadOnly, tx.Type())
	assert.Equal(t, TxOpen, tx.Status())

	require.NoError(t, tx.Commit())
	assert.Equal(t, TxCommitted, tx.Status())
	assert.ErrorIs(t, tx.Rollback(), ErrTransactionClosed)

	tx, err = d.BeginTransaction(ReadWrite)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())
	assert.Equal(t, "rolled_back", tx.Status().String())
	assert.Equal(t, "read_write", tx.Type().String())
}
