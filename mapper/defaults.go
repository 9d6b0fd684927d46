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

// defaultHTTP defines the library's built-in HTTP mappings for well-known error names.
// These are only defaults: callers are expected to override them at the boundary
// where HTTP is actually produced (REST gateway, HTTP handler, etc.).
var defaultHTTP = map[string]int{
	// 5xx: programming errors and unclassified failures.
	"Error":          http.StatusInternalServerError, // Anonymous error; nothing more specific is known.
	"TypeError":      http.StatusInternalServerError, // A value had the wrong type at runtime.
	"ReferenceError": http.StatusInternalServerError, // Use of an undefined identifier.
	"EvalError":      http.StatusInternalServerError,
	"AggregateError": http.StatusInternalServerError, // Several failures at once; no single status applies.
	"TimeoutError":   http.StatusGatewayTimeout,      // Operation exceeded the time budget.

	// 4xx: input and resource issues.
	"RangeError":    http.StatusBadRequest, // A value was outside its allowed range.
	"SyntaxError":   http.StatusBadRequest, // Input could not be parsed.
	"URIError":      http.StatusBadRequest, // Malformed URI component.
	"NotFoundError": http.StatusNotFound,   // Target resource does not exist.
	"AbortError":    http.StatusRequestTimeout,
}

// defaultGRPC defines the library's built-in gRPC mappings for well-known error names.
var defaultGRPC = map[string]codes.Code{
	"Error":          codes.Internal,
	"TypeError":      codes.Internal,
	"ReferenceError": codes.Internal,
	"EvalError":      codes.Internal,
	"AggregateError": codes.Internal,
	"TimeoutError":   codes.DeadlineExceeded,

	"RangeError":    codes.OutOfRange,
	"SyntaxError":   codes.InvalidArgument,
	"URIError":      codes.InvalidArgument,
	"NotFoundError": codes.NotFound,
	"AbortError":    codes.Canceled, // Caller aborted the operation.
}
