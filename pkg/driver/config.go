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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kraklabs/tgbridge/pkg/rpc"
)

// ErrConfig is matched by every configuration validation error.
var ErrConfig = errors.New("invalid driver configuration")

// Transport schemes accepted in Config.URI.
const (
	SchemeList  = "list"
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// Config describes how to reach the engine.
type Config struct {
	URI              string `yaml:"uri"`
	Username         string `yaml:"username,omitempty"`
	Password         string `yaml:"password,omitempty"`
	Graph            string `yaml:"graph,omitempty"`
	TimeoutSeconds   int    `yaml:"timeout_seconds,omitempty"`
	VerifyConnection bool   `yaml:"verify_connection,omitempty"`
}

// ConfigError describes a rejected field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfig, e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Validate checks the URI and timeout.
func (c Config) Validate() error {
	if _, err := c.endpoint(); err != nil {
		return err
	}
	if c.TimeoutSeconds < 0 {
		return &ConfigError{Field: "timeout_seconds", Reason: "must not be negative"}
	}
	return nil
}

// Timeout returns the per-call timeout, falling back to rpc.DefaultTimeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return rpc.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GraphName returns the target graph, falling back to rpc.DefaultGraph.
func (c Config) GraphName() string {
	if c.Graph == "" {
		return rpc.DefaultGraph
	}
	return c.Graph
}

func (c Config) credentials() rpc.Credentials {
	return rpc.Credentials{Username: c.Username, Password: c.Password}
}

// endpoint is a parsed Config.URI.
type endpoint struct {
	scheme string
	// addrs holds host:port pairs for list://, or the base URL for http(s).
	addrs []string
}

func (c Config) endpoint() (endpoint, error) {
	uri := strings.TrimSpace(c.URI)
	if uri == "" {
		return endpoint{}, &ConfigError{Field: "uri", Reason: "is required"}
	}
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return endpoint{}, &ConfigError{Field: "uri", Reason: fmt.Sprintf("%q has no scheme", uri)}
	}
	scheme = strings.ToLower(scheme)

	switch scheme {
	case SchemeList:
		var addrs []string
		for _, a := range strings.Split(rest, ",") {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			if !strings.Contains(a, ":") {
				return endpoint{}, &ConfigError{Field: "uri", Reason: fmt.Sprintf("address %q has no port", a)}
			}
			addrs = append(addrs, a)
		}
		if len(addrs) == 0 {
			return endpoint{}, &ConfigError{Field: "uri", Reason: "list:// needs at least one host:port"}
		}
		return endpoint{scheme: scheme, addrs: addrs}, nil
	case SchemeHTTP, SchemeHTTPS:
		if rest == "" {
			return endpoint{}, &ConfigError{Field: "uri", Reason: "missing host"}
		}
		return endpoint{scheme: scheme, addrs: []string{scheme + "://" + rest}}, nil
	default:
		return endpoint{}, &ConfigError{Field: "uri", Reason: fmt.Sprintf("unsupported scheme %q (want list, http or https)", scheme)}
	}
}
