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

// Package httpx writes normalized error records as JSON HTTP responses.
package httpx

import (
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/protobuf/encoding/protojson"

	"dirpx.dev/errnotation"
	"dirpx.dev/errnotation/adapter"
	"dirpx.dev/errnotation/apis"
)

// Writer is a thin adapter that turns any error value into an HTTP
// response. The status is resolved from the record name via Mapper
// (500 when Mapper is nil).
type Writer struct {
	Mapper  apis.Mapper
	Logger  *slog.Logger
	Options []errnotation.Option
}

// Write normalizes err, merges enrichment and writes the record as the
// response body. A nil err writes nothing.
//
// No redaction is performed: stacks and properties are exposed as-is.
// Callers that serve untrusted clients should strip them via enrichment
// or Options.
func (w Writer) Write(rw http.ResponseWriter, err any, enrichment map[string]any) {
	if err == nil {
		return
	}
	rec := errnotation.Normalize(err, enrichment, w.Options...)
	w.WriteRecord(rw, rec)
}

// WriteRecord writes an already normalized record.
func (w Writer) WriteRecord(rw http.ResponseWriter, rec errnotation.Record) {
	code := http.StatusInternalServerError
	if w.Mapper != nil {
		code = w.Mapper.HTTPStatus(rec.Name())
	}

	if w.Logger != nil {
		w.Logger.Error("http request failed",
			slog.Int("status", code),
			slog.Any("error", rec),
		)
	}

	body, err := encode(rec)
	if err != nil {
		body, _ = encode(errnotation.Record{
			errnotation.KeyMessage: rec.Message(),
			errnotation.KeyName:    rec.Name(),
		})
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	_, _ = rw.Write(body)
}

// Recover returns middleware that converts panics in next into error
// responses. http.ErrAbortHandler is re-panicked.
func (w Writer) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			if _, ok := v.(error); !ok {
				v = fmt.Sprint(v)
			}
			w.Write(rw, v, map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})
		}()
		next.ServeHTTP(rw, r)
	})
}

func encode(rec errnotation.Record) ([]byte, error) {
	st, err := adapter.ToStruct(rec)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{EmitUnpopulated: false}.Marshal(st)
}
