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
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_CallCypher(t *testing.T) {
	var gotGraph, gotQuery string
	srv := httptest.NewServer(NewHTTPHandler(func(_ context.Context, query, graph string, _ time.Duration) (string, error) {
		gotQuery, gotGraph = query, graph
		return `{"ref0":-1,"id0":3,"type":"node"}`, nil
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL + "/")
	defer client.Close()

	out, err := client.CallCypher(context.Background(), "CREATE (n0:Person)", "movies", time.Second)
	require.NoError(t, err)
	assert.Equal(t, `{"ref0":-1,"id0":3,"type":"node"}`, out)
	assert.Equal(t, "CREATE (n0:Person)", gotQuery)
	assert.Equal(t, "movies", gotGraph)
}

func TestHTTPClient_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "pw", pass)
		assert.Equal(t, "req-9", r.Header.Get(requestIDKey))

		var req cypherRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultGraph, req.Graph)
		assert.Equal(t, DefaultTimeout.Seconds(), req.Timeout)
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, WithCredentials(Credentials{Username: "admin", Password: "pw"}))
	out, err := client.CallCypher(WithRequestID(context.Background(), "req-9"), "RETURN 1", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "null", out)
}

func TestHTTPClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantCode string
		wantMsg  string
	}{
		{"syntax error", http.StatusBadRequest, `{"error_code":"SyntaxError","error_message":"unexpected token"}`, KindClient, "SyntaxError", "unexpected token"},
		{"engine failure", http.StatusInternalServerError, `{"error_code":"Internal","error_message":"disk"}`, KindDatabase, "Internal", "disk"},
		{"overloaded", http.StatusServiceUnavailable, `busy`, KindTransient, "HTTP_503", "busy"},
		{"code names class", http.StatusInternalServerError, `{"error_code":"TuGraph.TransientError.Lock","error_message":"lock"}`, KindTransient, "TuGraph.TransientError.Lock", "lock"},
		{"empty body", http.StatusNotFound, ``, KindClient, "HTTP_404", "Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL).CallCypher(context.Background(), "RETURN 1", "", 0)

			var eq *EngineQueryError
			require.ErrorAs(t, err, &eq)
			assert.Equal(t, tt.wantKind, eq.Kind)
			assert.Equal(t, tt.wantCode, eq.Code)
			assert.Equal(t, tt.wantMsg, eq.Message)
		})
	}
}

func TestHTTPClient_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url).CallCypher(context.Background(), "RETURN 1", "", time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransient))
}

func TestHTTPHandler_PropagatesEngineErrors(t *testing.T) {
	srv := httptest.NewServer(NewHTTPHandler(func(context.Context, string, string, time.Duration) (string, error) {
		return "", &EngineQueryError{Kind: KindTransient, Code: "Busy", Message: "try later"}
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).CallCypher(context.Background(), "RETURN 1", "", 0)

	var eq *EngineQueryError
	require.ErrorAs(t, err, &eq)
	assert.Equal(t, KindTransient, eq.Kind)
	assert.Equal(t, "Busy", eq.Code)
	assert.Equal(t, "try later", eq.Message)
}
