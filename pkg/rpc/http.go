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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// cypherRequest is the gateway request body.
type cypherRequest struct {
	Graph   string  `json:"graph"`
	Script  string  `json:"script"`
	Timeout float64 `json:"timeout"`
}

// HTTPClient is a Client over the HTTP gateway.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
	opts       options
}

// NewHTTPClient creates a client for the gateway at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	o := buildOptions(opts)
	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &HTTPClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: hc,
		opts:       o,
	}
}

// CallCypher implements Client.
func (c *HTTPClient) CallCypher(ctx context.Context, query, graph string, timeout time.Duration) (string, error) {
	graph, timeout = normalize(graph, timeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqBody, err := json.Marshal(cypherRequest{Graph: graph, Script: query, Timeout: timeout.Seconds()})
	if err != nil {
		return "", &EngineQueryError{Kind: KindClient, Code: "InvalidRequest", Message: err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/cypher", bytes.NewReader(reqBody))
	if err != nil {
		return "", &EngineQueryError{Kind: KindClient, Code: "InvalidRequest", Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDKey, RequestID(ctx))
	if c.opts.creds.Username != "" {
		req.SetBasicAuth(c.opts.creds.Username, c.opts.creds.Password)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fromTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fromTransport(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fromHTTP(resp.StatusCode, body)
	}
	return string(body), nil
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.HTTPClient.CloseIdleConnections()
	return nil
}
