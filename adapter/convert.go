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

// Package adapter converts normalized records into protobuf well-known
// types so they can travel inside gRPC status details or any other
// protobuf envelope.
package adapter

import (
	"errors"
	"fmt"

	"dirpx.dev/errnotation"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrNotConvertible is returned when a record holds a value that has no
// JSON representation (functions, channels, cyclic maps).
var ErrNotConvertible = errors.New("adapter: record not convertible")

// ToStruct converts a record into a structpb.Struct.
//
// The record is first rendered through its canonical JSON form, so nested
// values (maps, parsed frames, typed slices) arrive in the same shape a
// JSON consumer would see. Numbers become float64, as in any JSON decoder.
func ToStruct(rec errnotation.Record) (*structpb.Struct, error) {
	if rec == nil {
		return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
	}
	b, err := rec.JSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConvertible, err)
	}
	st := &structpb.Struct{}
	if err := protojson.Unmarshal(b, st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConvertible, err)
	}
	return st, nil
}

// FromStruct converts a structpb.Struct back into a record. The inverse of
// ToStruct up to JSON types: numbers are float64 and parsed frames are
// plain maps.
func FromStruct(st *structpb.Struct) errnotation.Record {
	if st == nil {
		return nil
	}
	return errnotation.Record(st.AsMap())
}
