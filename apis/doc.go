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

// Package apis defines the public Go-level contracts for errnotation.
//
// An error value handed to errnotation.Normalize can be anything: a plain
// error, a map, a string, or a custom type. The interfaces in this package
// let such values expose richer data (kind name, stack trace, explicit
// position, cause, extra properties, a custom serialization) without
// importing the concrete errnotation types. Normalize checks each
// capability once and falls back to safe defaults for everything missing.
//
// The package also holds the transport contracts (Mapper, Status) shared
// by the HTTP and gRPC adapters.
//
// This package must remain lightweight and should not introduce heavy
// dependencies, so it only contains interfaces and very small value types.
package apis
