// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package contract

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// DefaultQueryLimitBytes is the baseline soft limit for literal query text.
	DefaultQueryLimitBytes = 16 << 20 // 16 MiB

	// RequestIDMaxBytes is the maximum length for a request id.
	RequestIDMaxBytes = 128

	envQueryLimit = "TGBRIDGE_QUERY_LIMIT_BYTES"
)

// QueryLimitBytes returns the effective soft limit. Invalid or non-positive
// overrides fall back to DefaultQueryLimitBytes.
func QueryLimitBytes() int {
	if v := os.Getenv(envQueryLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultQueryLimitBytes
}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	OK      bool
	Message string
}

// ValidateQuery checks literal query text against QueryLimitBytes.
func ValidateQuery(query string) *ValidationResult {
	if limit := QueryLimitBytes(); len(query) > limit {
		return &ValidationResult{
			OK:      false,
			Message: fmt.Sprintf("query text is %d bytes, over the %d byte limit", len(query), limit),
		}
	}
	return &ValidationResult{OK: true}
}

// ValidateRequestID checks that id fits in gRPC metadata and HTTP headers.
func ValidateRequestID(id string) *ValidationResult {
	if id == "" {
		return &ValidationResult{OK: false, Message: "request id is empty"}
	}
	if len(id) > RequestIDMaxBytes {
		return &ValidationResult{OK: false, Message: fmt.Sprintf("request id exceeds %d bytes", RequestIDMaxBytes)}
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c < 0x21 || c > 0x7e {
			return &ValidationResult{OK: false, Message: fmt.Sprintf("request id has invalid byte 0x%02x", c)}
		}
	}
	return &ValidationResult{OK: true}
}
