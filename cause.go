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
	"reflect"

	"dirpx.dev/errnotation/apis"
)

// causeOf finds the direct cause: the Causer capability first, then a
// "cause" property, then Unwrap. Custom serializations only contribute
// their own "cause" entry.
func causeOf(err any, base map[string]any, serialized bool) (any, bool) {
	if !serialized {
		if c, ok := err.(apis.Causer); ok {
			if v, ok := try(c.ErrorCause); ok && !isNil(v) {
				return v, true
			}
		}
	}
	if v, ok := base[KeyCause]; ok && !isNil(v) {
		return v, true
	}
	if serialized {
		return nil, false
	}
	if u, ok := err.(interface{ Unwrap() error }); ok {
		if v, ok := try(u.Unwrap); ok && !isNil(v) {
			return v, true
		}
	}
	return nil, false
}

// serializeCause renders one cause level. Error-like causes become the
// canonical JSON of their own record; other values pass through.
func serializeCause(c any, seen chain) any {
	if seen.has(c) {
		return CircularMarker
	}
	if !isErrorLike(c) {
		return c
	}
	rec := normalize(c, nil, Options{}, seen.with(c))
	b, err := rec.JSON()
	if err != nil {
		return rec.Message()
	}
	return string(b)
}

func isErrorLike(v any) bool {
	switch m := v.(type) {
	case error, apis.Messager, apis.Namer, apis.Stacker, apis.Causer, apis.Serializer:
		return true
	case Record:
		return hasErrorKeys(m)
	case map[string]any:
		return hasErrorKeys(m)
	}
	return false
}

func hasErrorKeys(m map[string]any) bool {
	for _, k := range []string{KeyMessage, KeyName, KeyStack} {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// ref identifies a reference value independently of its static type, so a
// map and a Record sharing storage compare equal.
type ref struct {
	kind reflect.Kind
	ptr  uintptr
}

func refOf(v any) (ref, bool) {
	if v == nil {
		return ref{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return ref{}, false
		}
		return ref{kind: rv.Kind(), ptr: rv.Pointer()}, true
	}
	return ref{}, false
}

// chain holds the references on the current cause path, root first.
type chain []ref

func (c chain) has(v any) bool {
	r, ok := refOf(v)
	if !ok {
		return false
	}
	for _, x := range c {
		if x == r {
			return true
		}
	}
	return false
}

// with returns a copy of c extended by v. Value types are not tracked.
func (c chain) with(v any) chain {
	r, ok := refOf(v)
	if !ok {
		return c
	}
	return append(c[:len(c):len(c)], r)
}
