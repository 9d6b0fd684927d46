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

// Package errnotation turns arbitrary error values into plain, serializable
// records suitable for logging, telemetry and transport.
//
// # Overview
//
// Normalize accepts anything that stands for an error: a Go error, an
// *Error from this package, a map produced by an earlier normalization, a
// string, or a domain type implementing the capability interfaces from
// dirpx.dev/errnotation/apis. It returns a Record (map[string]any) with:
//
//   - "message" and "name", always present;
//   - "stack", when the error carries a trace;
//   - "fileName", "lineNumber", "columnNumber", when a position is known
//     or can be parsed from the trace;
//   - "cause", when the error has one (see below);
//   - "parsedStack", only when requested via WithParsedStack;
//   - every extra property of the error, and every enrichment key.
//
// Enrichment is applied last and always wins:
//
//	rec := errnotation.Normalize(err, map[string]any{"requestId": id},
//	    errnotation.WithOffset(1),
//	)
//
// # Causes
//
// A cause that is itself error-like is normalized recursively and stored as
// its canonical JSON text. Any other cause value (a string, a number) is
// stored as-is. A cause that points back at an error already on the chain
// is replaced by "[Circular]", so cyclic chains of any length terminate.
//
// # Guarantees
//
// Normalize never panics on well-formed input, never mutates the error or
// the enrichment map, and keeps no state between calls; it is safe for
// concurrent use.
package errnotation
