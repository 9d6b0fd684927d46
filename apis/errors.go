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

package apis

// Messager is implemented by errors whose human message differs from
// Error(). Normalize uses it for the "message" field; without it the
// message falls back to Error().
type Messager interface {
	ErrorMessage() string
}

// Namer exposes the error kind, e.g. "TypeError", "RangeError" or a domain
// name like "QuotaExceeded". Errors without a name are reported as "Error".
type Namer interface {
	ErrorName() string
}

// Stacker exposes a textual stack trace. The first line may be a header
// ("TypeError: boom"); every following line is a frame.
type Stacker interface {
	ErrorStack() string
}

// Positioner exposes an explicit source position.
//
// When both line and column are positive they are reported unchanged and
// stack parsing is skipped. Returning zero for either means "unknown".
type Positioner interface {
	ErrorPosition() (line, column int)
}

// Causer exposes the direct cause of an error.
//
// Unlike Unwrap, the cause may be any value: another error, a string, a
// number. A nil result means "no cause".
type Causer interface {
	ErrorCause() any
}

// Propertied exposes the extra, caller-attached properties of an error
// (codes, ids, details). Normalize copies every entry into the record.
//
// Implementations SHOULD return a map the caller may read freely;
// Normalize never writes to it.
type Propertied interface {
	ErrorProperties() map[string]any
}

// Serializer lets a domain error take over its own serialization.
//
// When implemented, the returned map becomes the base record and the other
// capabilities of the error are not consulted for message or stack.
type Serializer interface {
	SerializeError() map[string]any
}
