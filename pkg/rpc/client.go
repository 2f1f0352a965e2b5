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
	"encoding/base64"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Defaults applied when a call leaves graph or timeout unset.
const (
	DefaultGraph   = "default"
	DefaultTimeout = 10 * time.Second
)

const requestIDKey = "x-request-id"

// Client executes literal queries against a graph.
type Client interface {
	CallCypher(ctx context.Context, query, graph string, timeout time.Duration) (string, error)
	Close() error
}

// Credentials authenticate calls. A zero value sends no authorization.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) authorization() string {
	if c.Username == "" {
		return ""
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Password))
}

type options struct {
	creds      Credentials
	httpClient *http.Client
}

// Option configures a transport.
type Option func(*options)

// WithCredentials sets the username and password sent with every call.
func WithCredentials(creds Credentials) Option {
	return func(o *options) {
		o.creds = creds
	}
}

// WithHTTPClient replaces the http.Client used by HTTPClient.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type requestIDContextKey struct{}

// WithRequestID attaches id to ctx; transports forward it to the engine.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

// RequestID returns the id attached to ctx, generating a new one when absent.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

func normalize(graph string, timeout time.Duration) (string, time.Duration) {
	if graph == "" {
		graph = DefaultGraph
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return graph, timeout
}
