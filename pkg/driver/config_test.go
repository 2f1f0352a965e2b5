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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/tgbridge/pkg/rpc"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "grpc list", cfg: Config{URI: "list://127.0.0.1:9090,127.0.0.1:9091"}},
		{name: "http", cfg: Config{URI: "http://localhost:7070"}},
		{name: "https upper-case scheme", cfg: Config{URI: "HTTPS://db.example.com"}},
		{name: "empty", cfg: Config{}, wantErr: true},
		{name: "no scheme", cfg: Config{URI: "localhost:9090"}, wantErr: true},
		{name: "unknown scheme", cfg: Config{URI: "bolt://localhost:7687"}, wantErr: true},
		{name: "list without port", cfg: Config{URI: "list://localhost"}, wantErr: true},
		{name: "empty list", cfg: Config{URI: "list://,"}, wantErr: true},
		{name: "http without host", cfg: Config{URI: "http://"}, wantErr: true},
		{name: "negative timeout", cfg: Config{URI: "http://h", TimeoutSeconds: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))
		})
	}
}

func TestConfig_Endpoint(t *testing.T) {
	ep, err := Config{URI: "list:// a:1 , b:2 "}.endpoint()
	require.NoError(t, err)
	assert.Equal(t, SchemeList, ep.scheme)
	assert.Equal(t, []string{"a:1", "b:2"}, ep.addrs)

	ep, err = Config{URI: "http://h:7070/base"}.endpoint()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://h:7070/base"}, ep.addrs)
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, rpc.DefaultTimeout, cfg.Timeout())
	assert.Equal(t, rpc.DefaultGraph, cfg.GraphName())

	cfg = Config{TimeoutSeconds: 3, Graph: "movies"}
	assert.Equal(t, 3*time.Second, cfg.Timeout())
	assert.Equal(t, "movies", cfg.GraphName())
}

func TestConfig_YAML(t *testing.T) {
	src := `
uri: list://127.0.0.1:9090
username: admin
password: secret
graph: default
timeout_seconds: 5
verify_connection: true
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	assert.Equal(t, Config{
		URI:              "list://127.0.0.1:9090",
		Username:         "admin",
		Password:         "secret",
		Graph:            "default",
		TimeoutSeconds:   5,
		VerifyConnection: true,
	}, cfg)
}
