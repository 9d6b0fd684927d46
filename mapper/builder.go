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

package mapper

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

type builder struct {
	// user-provided adjustments (applied on top of library defaults)

	// httpDefaults holds per-name HTTP defaults that override library defaults.
	httpDefaults map[string]int
	// grpcDefaults holds per-name gRPC defaults as ints; converted to codes.Code in New().
	grpcDefaults map[string]int

	// httpOverride holds exact per-name HTTP overrides (higher than defaults).
	httpOverride map[string]int
	// grpcOverride holds exact per-name gRPC overrides as ints; converted in New().
	grpcOverride map[string]int

	// global fallbacks used when a name has no default at all.
	fallbackHTTP int
	fallbackGRPC codes.Code

	// errs collects invalid options; New reports the first one.
	errs []error
}

// newBuilder creates an empty builder with maps pre-sized
// to hold typical numbers of entries.
func newBuilder() *builder {
	return &builder{
		httpDefaults: make(map[string]int, len(defaultHTTP)),
		grpcDefaults: make(map[string]int, len(defaultGRPC)),

		// overrides are usually few
		httpOverride: make(map[string]int),
		grpcOverride: make(map[string]int),

		// hard fallbacks if the name was never seen
		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}

// freezeHTTP makes an immutable copy of an HTTP rule map.
// Used when finalizing the mapper so later mutations to the builder
// (or caller-owned maps) cannot affect the mapper.
func freezeHTTP(src map[string]int) map[string]int {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// freezeGRPC makes an immutable copy of a gRPC rule map,
// converting builder-style int values into typed gRPC codes.
func freezeGRPC(src map[string]int) map[string]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]codes.Code, len(src))
	for k, v := range src {
		dst[k] = codes.Code(v)
	}
	return dst
}
