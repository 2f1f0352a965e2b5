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
	"fmt"
	"log/slog"
	"sync"

	"github.com/kraklabs/tgbridge/pkg/model"
	"github.com/kraklabs/tgbridge/pkg/request"
	"github.com/kraklabs/tgbridge/pkg/response"
	"github.com/kraklabs/tgbridge/pkg/rpc"
)

// ErrClosed is returned by Request and Ping after Close.
var ErrClosed = errors.New("driver closed")

// Dialer builds the transport for a validated Config.
type Dialer func(cfg Config) (rpc.Client, error)

// Driver hands out requests bound to one engine transport.
type Driver struct {
	cfg         Config
	logger      *slog.Logger
	dial        Dialer
	requestOpts []request.Option

	mu     sync.Mutex
	client rpc.Client
	closed bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used by the driver and its requests.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithRequestOptions adds options applied to every Request.
func WithRequestOptions(opts ...request.Option) Option {
	return func(d *Driver) {
		d.requestOpts = append(d.requestOpts, opts...)
	}
}

// WithDialer replaces the scheme-based transport factory.
func WithDialer(dial Dialer) Option {
	return func(d *Driver) {
		if dial != nil {
			d.dial = dial
		}
	}
}

// New validates cfg and returns a driver. With cfg.VerifyConnection the
// transport is created immediately.
func New(cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:    cfg,
		logger: slog.Default(),
		dial:   dialEndpoint,
	}
	for _, opt := range opts {
		opt(d)
	}
	if cfg.VerifyConnection {
		if _, err := d.ensureClient(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// NewWithClient returns a driver using client as its transport. The URI in
// cfg is not validated.
func NewWithClient(cfg Config, client rpc.Client, opts ...Option) *Driver {
	d := &Driver{
		cfg:    cfg,
		logger: slog.Default(),
		dial:   dialEndpoint,
		client: client,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the configuration the driver was built with.
func (d *Driver) Config() Config {
	return d.cfg
}

func dialEndpoint(cfg Config) (rpc.Client, error) {
	ep, err := cfg.endpoint()
	if err != nil {
		return nil, err
	}
	creds := rpc.WithCredentials(cfg.credentials())
	if ep.scheme == SchemeList {
		return rpc.NewGRPCClient(ep.addrs, creds)
	}
	return rpc.NewHTTPClient(ep.addrs[0], creds), nil
}

func (d *Driver) ensureClient() (rpc.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	if d.client != nil {
		return d.client, nil
	}
	client, err := d.dial(d.cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", d.cfg.URI, err)
	}
	d.logger.Info("driver.connected", "uri", d.cfg.URI, "graph", d.cfg.GraphName())
	d.client = client
	return client, nil
}

// Request returns an executor bound to the driver's transport, graph and
// timeout.
func (d *Driver) Request() (*request.Request, error) {
	client, err := d.ensureClient()
	if err != nil {
		return nil, err
	}
	opts := []request.Option{
		request.WithLogger(d.logger),
		request.WithGraph(d.cfg.GraphName()),
		request.WithTimeout(d.cfg.Timeout()),
	}
	return request.New(client, append(opts, d.requestOpts...)...), nil
}

// BeginTransaction opens a status-only transaction.
func (d *Driver) BeginTransaction(typ TxType) (*Transaction, error) {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	d.logger.Debug("driver.transaction.begin", "type", typ.String())
	return &Transaction{typ: typ}, nil
}

// Ping runs a trivial query and returns its rows.
func (d *Driver) Ping(ctx context.Context) ([]*model.RowModel, error) {
	req, err := d.Request()
	if err != nil {
		return nil, err
	}
	resp, err := req.ExecuteRow(ctx, request.RowModelRequest{Statement: model.NewStatement("RETURN 1", nil)})
	if err != nil {
		return nil, err
	}
	return response.Collect(resp), nil
}

// Close releases the transport. Later calls do nothing.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	if d.client != nil {
		if err := d.client.Close(); err != nil {
			d.logger.Warn("driver.close.failed", "uri", d.cfg.URI, "error", err)
		}
		d.client = nil
	}
	d.logger.Info("driver.closed", "uri", d.cfg.URI)
	return nil
}
