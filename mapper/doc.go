/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package mapper provides deterministic, immutable mappings from error
// names (the "name" field of an errnotation record) to transport-level
// statuses for HTTP and gRPC.
//
// # Overview
//
// A normalized record always carries a name: "Error" for anonymous errors,
// or a kind such as "TypeError", "RangeError" or a domain-specific name.
// Transport layers (HTTP handlers, gRPC servers) need to turn that name
// into concrete status codes. Package mapper does that in a way that is:
//
//   - immutable: a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable: callers can change library defaults per name;
//   - dual: HTTP and gRPC are resolved with the same logic.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the name;
//  2. per-name default (library or user-adjusted);
//  3. global fallback (500 / codes.Internal).
//
// Names are matched exactly after trimming surrounding whitespace.
//
// # Example
//
//	m, err := mapper.New(
//	    mapper.WithHTTPDefault("QuotaError", http.StatusTooManyRequests),
//	    mapper.WithGRPCDefault("QuotaError", int(codes.ResourceExhausted)),
//	    mapper.WithHTTPOverride("TypeError", http.StatusBadRequest),
//	)
//	if err != nil {
//	    return err
//	}
//	st := m.Status(rec.Name())
//
// # Diagnostics
//
// Explain renders which tier produced each status:
//
//	name="RangeError"
//	http: source=default -> 400
//	grpc: source=default -> OUTOFRANGE(11)
package mapper
