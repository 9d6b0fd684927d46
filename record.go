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

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"sort"
	"strconv"

	"dirpx.dev/errnotation/stack"
)

// Well-known record keys.
const (
	KeyMessage      = "message"
	KeyName         = "name"
	KeyStack        = "stack"
	KeyFileName     = "fileName"
	KeyLineNumber   = "lineNumber"
	KeyColumnNumber = "columnNumber"
	KeyCause        = "cause"
	KeyParsedStack  = "parsedStack"
)

const (
	// DefaultName is reported for errors that carry no kind name.
	DefaultName = "Error"

	// CircularMarker replaces a cause that refers back into its own chain.
	CircularMarker = "[Circular]"
)

// Record is a normalized error: a flat, serializable mapping that is
// created fresh by every Normalize call and owned by the caller.
type Record map[string]any

// Message returns the "message" field, or "" when it is not a string.
func (r Record) Message() string {
	s, _ := r[KeyMessage].(string)
	return s
}

// Name returns the "name" field, or "" when it is not a string.
func (r Record) Name() string {
	s, _ := r[KeyName].(string)
	return s
}

// Stack returns the "stack" field, or "" when it is not a string.
func (r Record) Stack() string {
	s, _ := r[KeyStack].(string)
	return s
}

// Position returns the resolved position fields. The result is false when
// the record has no usable line number.
func (r Record) Position() (stack.Position, bool) {
	line, ok := toInt(r[KeyLineNumber])
	if !ok {
		return stack.Position{}, false
	}
	p := stack.Position{LineNumber: line}
	p.FileName, _ = r[KeyFileName].(string)
	if col, ok := toInt(r[KeyColumnNumber]); ok {
		p.ColumnNumber = col
	}
	return p, true
}

// Cause returns the "cause" field and whether it is present.
func (r Record) Cause() (any, bool) {
	v, ok := r[KeyCause]
	return v, ok
}

// ParsedStack returns the annotated frames attached by WithParsedStack.
func (r Record) ParsedStack() []stack.Frame {
	fs, _ := r[KeyParsedStack].([]stack.Frame)
	return fs
}

// JSON renders the record as canonical JSON: keys sorted, no HTML escaping,
// no trailing newline. This is the encoding used for nested causes.
func (r Record) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any(r)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// LogValue implements slog.LogValuer. The record is logged as a group with
// its keys in sorted order.
func (r Record) LogValue() slog.Value {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, r[k]))
	}
	return slog.GroupValue(attrs...)
}

var _ slog.LogValuer = Record(nil)

// toInt accepts the numeric shapes a position may arrive in: Go integers,
// whole float64 values (decoded JSON) and json.Number.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return toInt(float64(n))
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := strconv.Atoi(string(n))
		return i, err == nil
	}
	return 0, false
}
