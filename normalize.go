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
	"fmt"
	"reflect"

	"dirpx.dev/errnotation/apis"
	"dirpx.dev/errnotation/stack"
)

// Normalize converts err into a fresh Record.
//
// Build process overview:
//
//  1. Pick the base: the result of a custom serialization (apis.Serializer
//     or a json.Marshaler producing an object), or the error's own
//     properties (map keys or apis.Propertied).
//  2. Copy the base into the record.
//  3. Ensure "message" and "name"; add "stack" when the error has one.
//  4. Resolve the position: explicit line+column win, otherwise the stack
//     is parsed starting at Options.Offset, otherwise nothing is set.
//  5. Attach "parsedStack" when requested.
//  6. Serialize the cause.
//  7. Apply enrichment on top of everything.
//
// A nil enrichment map is treated as empty. Neither err nor enrichment is
// modified.
func Normalize(err any, enrichment map[string]any, opts ...Option) Record {
	var seen chain
	return normalize(err, enrichment, buildOptions(opts), seen.with(err))
}

func normalize(err any, enrichment map[string]any, o Options, seen chain) Record {
	// (1) Capability dispatch happens exactly once.
	base, serialized := baseOf(err)

	// (2) Own properties.
	rec := make(Record, len(base)+len(enrichment)+6)
	for k, v := range base {
		rec[k] = v
	}

	// (3) Standard fields.
	if isNil(rec[KeyMessage]) {
		rec[KeyMessage] = messageOf(err, serialized)
	}
	if isNil(rec[KeyName]) {
		rec[KeyName] = nameOf(err)
	}
	if isNil(rec[KeyStack]) {
		delete(rec, KeyStack)
		if !serialized {
			if s, ok := err.(apis.Stacker); ok {
				if st, ok := try(s.ErrorStack); ok && st != "" {
					rec[KeyStack] = st
				}
			}
		}
	}

	// (4) Position.
	resolvePosition(rec, err, serialized, o.Offset)

	// (5) Annotated frames.
	if o.ParsedStack != 0 {
		if st, ok := rec[KeyStack].(string); ok {
			frames := stack.AnnotateAll(st)
			if frames == nil {
				frames = []stack.Frame{}
			}
			if o.ParsedStack > 0 && len(frames) > o.ParsedStack {
				frames = frames[:o.ParsedStack]
			}
			rec[KeyParsedStack] = frames
		}
	}

	// (6) Cause. A nil cause never leaves a key behind.
	delete(rec, KeyCause)
	if c, ok := causeOf(err, base, serialized); ok {
		rec[KeyCause] = serializeCause(c, seen)
	}

	// (7) Enrichment has the final word.
	for k, v := range enrichment {
		rec[k] = v
	}
	return rec
}

// baseOf returns the map the record starts from and whether it came from
// a custom serialization.
func baseOf(err any) (map[string]any, bool) {
	switch v := err.(type) {
	case apis.Serializer:
		m, _ := try(v.SerializeError)
		return m, true
	case json.Marshaler:
		if m, ok := decodeObject(v); ok {
			return m, true
		}
	}
	return propertiesOf(err), false
}

func propertiesOf(err any) map[string]any {
	switch v := err.(type) {
	case Record:
		return v
	case map[string]any:
		return v
	case apis.Propertied:
		m, _ := try(v.ErrorProperties)
		return m
	}
	return nil
}

// decodeObject runs MarshalJSON and keeps the result only when it is a
// JSON object.
func decodeObject(m json.Marshaler) (map[string]any, bool) {
	b, ok := try(func() []byte {
		b, err := m.MarshalJSON()
		if err != nil {
			return nil
		}
		return b
	})
	b = bytes.TrimSpace(b)
	if !ok || len(b) == 0 || b[0] != '{' {
		return nil, false
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false
	}
	return out, true
}

// messageOf is the fallback for a missing "message": the Messager
// capability, then Error(), then the value's own text.
func messageOf(err any, serialized bool) string {
	if !serialized {
		if m, ok := err.(apis.Messager); ok {
			if s, ok := try(m.ErrorMessage); ok {
				return s
			}
		}
	}
	switch v := err.(type) {
	case error:
		if s, ok := try(v.Error); ok {
			return s
		}
		return ""
	case string:
		return v
	case fmt.Stringer:
		if s, ok := try(v.String); ok {
			return s
		}
		return ""
	}
	// Maps may contain themselves; fmt would recurse forever.
	switch reflect.ValueOf(err).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return ""
	}
	return fmt.Sprint(err)
}

func nameOf(err any) string {
	if n, ok := err.(apis.Namer); ok {
		if s, ok := try(n.ErrorName); ok && s != "" {
			return s
		}
	}
	return DefaultName
}

func resolvePosition(rec Record, err any, serialized bool, offset int) {
	if !serialized {
		if p, ok := err.(apis.Positioner); ok {
			type lc struct{ line, col int }
			v, _ := try(func() lc {
				l, c := p.ErrorPosition()
				return lc{l, c}
			})
			if v.line > 0 && v.col > 0 {
				if isNil(rec[KeyLineNumber]) {
					rec[KeyLineNumber] = v.line
				}
				if isNil(rec[KeyColumnNumber]) {
					rec[KeyColumnNumber] = v.col
				}
			}
		}
	}

	// Explicit line and column are never overridden by parsing.
	if !isNil(rec[KeyLineNumber]) && !isNil(rec[KeyColumnNumber]) {
		return
	}

	st, _ := rec[KeyStack].(string)
	if st == "" {
		return
	}
	p, ok := stack.ParsePosition(st, offset)
	if !ok {
		return
	}
	rec[KeyFileName] = p.FileName
	rec[KeyLineNumber] = p.LineNumber
	// A browser-style match leaves an own columnNumber property in place.
	if p.HasColumn() {
		rec[KeyColumnNumber] = p.ColumnNumber
	}
}

// try calls f and reports false instead of propagating a panic. Capability
// methods are caller code and may fail on nil receivers.
func try[T any](f func() T) (v T, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return f(), true
}

// isNil reports whether v is nil or a typed nil reference.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
