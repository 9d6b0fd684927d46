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
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/errnotation/apis"
	"google.golang.org/grpc/codes"
)

// ErrInvalidRule is returned by New when an option carries an empty name
// or a status outside the transport's range.
var ErrInvalidRule = errors.New("mapper: invalid rule")

// New constructs an immutable apis.Mapper snapshot.
//
// The resulting apis.Mapper is fully thread-safe and designed for long-lived reuse.
// Each build creates a self-contained mapper instance; no shared references
// to global state or user-provided structures remain.
//
// Build process overview:
//
//  1. Seed the builder with library defaults (HTTP & gRPC).
//  2. Apply user-provided options (defaults, overrides).
//  3. Reject invalid rules.
//  4. Freeze all maps into immutable copies (fresh allocations).
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()

	// (1) Seed the builder with package-level defaults.
	// Copy into builder-owned maps to prevent external mutation.
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		// Keep values as int for internal uniformity;
		// convert to codes.Code when freezing the final snapshot.
		b.grpcDefaults[k] = int(v)
	}

	// (2) Apply user-supplied options.
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	// (3) Options cannot fail on their own; report the first bad one here.
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	// (4) Freeze everything into a read-only snapshot.
	return &mapper{
		httpDefault:  freezeHTTP(b.httpDefaults),
		grpcDefault:  freezeGRPC(b.grpcDefaults),
		httpOverride: freezeHTTP(b.httpOverride),
		grpcOverride: freezeGRPC(b.grpcOverride),
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

// mapper is an immutable mapper implementation that combines per-name
// defaults and per-name exact overrides. Lookups are single map reads and
// safe for concurrent use once constructed.
type mapper struct {
	// httpDefault holds the base HTTP status for a given error name.
	httpDefault map[string]int

	// grpcDefault holds the base gRPC status for a given error name.
	grpcDefault map[string]codes.Code

	// httpOverride holds explicit HTTP statuses for specific names.
	httpOverride map[string]int

	// grpcOverride holds explicit gRPC statuses for specific names.
	grpcOverride map[string]codes.Code

	// fallbackHTTP is used when there is no rule at all for a name.
	fallbackHTTP int

	// fallbackGRPC is used when there is no rule at all for a name.
	fallbackGRPC codes.Code
}

// HTTPStatus resolves an HTTP status for the given error name.
//
// Resolution order (highest to lowest):
//  1. exact override;
//  2. default (library or user overridden);
//  3. fallback (500).
func (m *mapper) HTTPStatus(name string) int {
	v, _ := m.resolveHTTP(normalizeName(name))
	return v
}

// GRPCStatus resolves a gRPC status for the given error name, with the
// same precedence as HTTPStatus.
func (m *mapper) GRPCStatus(name string) codes.Code {
	v, _ := m.resolveGRPC(normalizeName(name))
	return v
}

// Status resolves both HTTP and gRPC using the same inputs.
// This keeps HTTP/GRPC decisions consistent for a single logical error.
func (m *mapper) Status(name string) apis.Status {
	n := normalizeName(name)
	h, _ := m.resolveHTTP(n)
	g, _ := m.resolveGRPC(n)
	return apis.Status{HTTP: h, GRPC: g}
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a particular name.
//
// Example output:
//
//	name="AbortError"
//	http: source=override -> 499
//	grpc: source=default -> CANCELED(1)
//
// source ∈ {override | default | fallback}.
func (m *mapper) Explain(name string) string {
	n := normalizeName(name)
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "name=%q\n", n)

	h, src := m.resolveHTTP(n)
	_, _ = fmt.Fprintf(&b, "http: source=%s -> %d\n", src, h)

	g, src := m.resolveGRPC(n)
	_, _ = fmt.Fprintf(&b, "grpc: source=%s -> %s(%d)", src, strings.ToUpper(g.String()), int(g))

	return b.String()
}

func (m *mapper) resolveHTTP(name string) (int, string) {
	if v, ok := m.httpOverride[name]; ok {
		return v, "override"
	}
	if v, ok := m.httpDefault[name]; ok {
		return v, "default"
	}
	// HTTP must never be zero.
	return m.fallbackHTTP, "fallback"
}

func (m *mapper) resolveGRPC(name string) (codes.Code, string) {
	if v, ok := m.grpcOverride[name]; ok {
		return v, "override"
	}
	if v, ok := m.grpcDefault[name]; ok {
		return v, "default"
	}
	return m.fallbackGRPC, "fallback"
}
