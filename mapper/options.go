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
	"fmt"
	"strings"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithHTTPDefault sets or replaces the library-level default HTTP status
// for the given error name.
func WithHTTPDefault(name string, http int) Option {
	return func(b *builder) { b.setHTTP(b.httpDefaults, name, http) }
}

// WithGRPCDefault sets or replaces the library-level default gRPC status
// for the given error name.
func WithGRPCDefault(name string, grpc int) Option {
	return func(b *builder) { b.setGRPC(b.grpcDefaults, name, grpc) }
}

// WithHTTPOverride registers an exact HTTP override for the given name.
// Overrides take precedence over defaults.
func WithHTTPOverride(name string, http int) Option {
	return func(b *builder) { b.setHTTP(b.httpOverride, name, http) }
}

// WithGRPCOverride registers an exact gRPC override for the given name.
// Overrides take precedence over defaults.
func WithGRPCOverride(name string, grpc int) Option {
	return func(b *builder) { b.setGRPC(b.grpcOverride, name, grpc) }
}

func (b *builder) setHTTP(dst map[string]int, name string, status int) {
	n := normalizeName(name)
	switch {
	case n == "":
		b.errs = append(b.errs, fmt.Errorf("%w: empty name", ErrInvalidRule))
	case status < 100 || status > 599:
		b.errs = append(b.errs, fmt.Errorf("%w: HTTP status %d for %q", ErrInvalidRule, status, n))
	default:
		dst[n] = status
	}
}

func (b *builder) setGRPC(dst map[string]int, name string, code int) {
	n := normalizeName(name)
	switch {
	case n == "":
		b.errs = append(b.errs, fmt.Errorf("%w: empty name", ErrInvalidRule))
	case code < 0 || code > 16:
		b.errs = append(b.errs, fmt.Errorf("%w: gRPC code %d for %q", ErrInvalidRule, code, n))
	default:
		dst[n] = code
	}
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
