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
	"strings"
	"testing"

	"dirpx.dev/errnotation/stack"
)

func TestRecord_JSON_Canonical(t *testing.T) {
	t.Parallel()

	rec := Record{"name": "Error", "message": "a<b", "extra": true}
	b, err := rec.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if want := `{"extra":true,"message":"a<b","name":"Error"}`; string(b) != want {
		t.Fatalf("JSON = %s, want %s", b, want)
	}

	bad := Record{"fn": func() {}}
	if _, err := bad.JSON(); err == nil {
		t.Fatal("unsupported values must fail to encode")
	}
}

func TestRecord_Accessors(t *testing.T) {
	t.Parallel()

	rec := Record{
		KeyMessage:      "m",
		KeyName:         "N",
		KeyStack:        "s",
		KeyFileName:     "a.js",
		KeyLineNumber:   float64(3),
		KeyColumnNumber: json.Number("4"),
		KeyParsedStack:  []stack.Frame{{Raw: "x"}},
	}
	if rec.Message() != "m" || rec.Name() != "N" || rec.Stack() != "s" {
		t.Fatalf("text accessors: %v", rec)
	}
	p, ok := rec.Position()
	if !ok || p != (stack.Position{FileName: "a.js", LineNumber: 3, ColumnNumber: 4}) {
		t.Fatalf("Position = %+v ok=%v", p, ok)
	}
	if len(rec.ParsedStack()) != 1 {
		t.Fatal("ParsedStack accessor")
	}
	if _, ok := rec.Cause(); ok {
		t.Fatal("Cause must report absence")
	}
	if _, ok := (Record{KeyLineNumber: 1.5}).Position(); ok {
		t.Fatal("fractional line numbers are not positions")
	}
}

func TestRecord_LogValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	log.Error("request failed", "error", Normalize(New("TypeError", "boom"), map[string]any{"requestId": "r-1"}))

	out := buf.String()
	if !strings.Contains(out, `"error":{"message":"boom","name":"TypeError","requestId":"r-1"}`) {
		t.Fatalf("unexpected log line: %s", out)
	}
}
