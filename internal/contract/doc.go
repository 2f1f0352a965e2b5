// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package contract holds the limits tgbridge enforces before a query leaves
// the process.
//
// # Query Size
//
// Literal query text grows with the number of batched rows. Text larger than
// the soft limit is rejected rather than sent:
//
//	if res := contract.ValidateQuery(query); !res.OK {
//	    return res.Message
//	}
//
// The limit defaults to 16 MiB and can be changed with
// TGBRIDGE_QUERY_LIMIT_BYTES:
//
//	export TGBRIDGE_QUERY_LIMIT_BYTES=4194304  # 4 MiB
//
// # Request IDs
//
// Caller-supplied request ids are forwarded to the engine as metadata and
// must be printable ASCII of at most RequestIDMaxBytes bytes.
package contract
