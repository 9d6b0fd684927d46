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

package errnotation

// ErrorOption is a functional option for constructing or transforming an Error.
// It always takes an *Error and returns a (possibly new) *Error.
type ErrorOption func(*Error) *Error

// WithPropOption adds a single property on construction.
// Intended to be used with New(...).
func WithPropOption(k string, v any) ErrorOption {
	return func(e *Error) *Error {
		return e.WithProp(k, v)
	}
}

// WithPropsOption merges multiple properties on construction.
// Intended to be used with New(...).
func WithPropsOption(kv map[string]any) ErrorOption {
	return func(e *Error) *Error {
		return e.WithProps(kv)
	}
}

// WithCauseOption attaches a cause on construction.
// Intended to be used with New(...).
func WithCauseOption(cause any) ErrorOption {
	return func(e *Error) *Error {
		return e.WithCause(cause)
	}
}

// WithPositionOption sets an explicit position on construction.
// Intended to be used with New(...).
func WithPositionOption(line, column int) ErrorOption {
	return func(e *Error) *Error {
		return e.WithPosition(line, column)
	}
}

// WithStackOption captures the stack of the New(...) caller.
func WithStackOption() ErrorOption {
	return func(e *Error) *Error {
		// skip this closure and New
		return e.withStack(2)
	}
}
