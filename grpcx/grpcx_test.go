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

package grpcx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

	"dirpx.dev/errnotation"
	"dirpx.dev/errnotation/apis"
	"dirpx.dev/errnotation/mapper"
)

type ctxKey struct{}

func newMapper(t *testing.T) apis.Mapper {
	t.Helper()
	m, err := mapper.New()
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	return m
}

func failing(err error) grpc.UnaryHandler {
	return func(context.Context, any) (any, error) { return nil, err }
}

func TestInterceptor_ConvertsError(t *testing.T) {
	m, err := mapper.New()
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ic := UnaryServerInterceptor(m,
		WithLogger(logger),
		WithEnrich(func(ctx context.Context, _ error) map[string]any {
			return map[string]any{"requestId": ctx.Value(ctxKey{})}
		}),
	)

	cause := errors.New("row missing")
	src := errnotation.New("NotFoundError", "user 7 not found", errnotation.WithCauseOption(cause))
	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	info := &grpc.UnaryServerInfo{FullMethod: "/users.v1.Users/Get"}

	_, got := ic(ctx, nil, info, failing(src))
	st, ok := gstatus.FromError(got)
	if !ok {
		t.Fatalf("not a status error: %v", got)
	}
	if st.Code() != gcodes.NotFound {
		t.Fatalf("code = %v, want NotFound", st.Code())
	}
	if st.Message() != "user 7 not found" {
		t.Fatalf("message = %q", st.Message())
	}

	rec, ok := ExtractRecord(got)
	if !ok {
		t.Fatal("record detail missing")
	}
	if rec.Name() != "NotFoundError" || rec["requestId"] != "req-1" {
		t.Fatalf("record = %v", rec)
	}
	c, ok := rec.Cause()
	if !ok || !strings.Contains(fmt.Sprint(c), `"message":"row missing"`) {
		t.Fatalf("cause = %v", c)
	}

	logged := buf.String()
	if !strings.Contains(logged, "/users.v1.Users/Get") || !strings.Contains(logged, "NotFoundError") {
		t.Fatalf("log output = %s", logged)
	}
}

func TestInterceptor_PassesStatusThrough(t *testing.T) {
	ic := UnaryServerInterceptor(newMapper(t))
	want := gstatus.Error(gcodes.Unavailable, "try later")

	_, got := ic(context.Background(), nil, nil, failing(want))
	if got != want {
		t.Fatalf("err = %v, want the original status error", got)
	}
	if _, ok := ExtractRecord(got); ok {
		t.Fatal("status errors must not gain a record detail")
	}
}

func TestInterceptor_Success(t *testing.T) {
	ic := UnaryServerInterceptor(newMapper(t))
	resp, err := ic(context.Background(), "req", nil, func(_ context.Context, req any) (any, error) {
		return req, nil
	})
	if err != nil || resp != "req" {
		t.Fatalf("resp=%v err=%v", resp, err)
	}
}

func TestInterceptor_PlainErrorWithoutMapper(t *testing.T) {
	ic := UnaryServerInterceptor(nil, WithNormalizeOptions(errnotation.WithFullParsedStack()))

	_, got := ic(context.Background(), nil, nil, failing(fmt.Errorf("wrap: %w", errors.New("disk full"))))
	st, _ := gstatus.FromError(got)
	if st.Code() != gcodes.Internal {
		t.Fatalf("code = %v, want Internal", st.Code())
	}
	rec, ok := ExtractRecord(got)
	if !ok {
		t.Fatal("record detail missing")
	}
	if rec.Message() != "wrap: disk full" || rec.Name() != errnotation.DefaultName {
		t.Fatalf("record = %v", rec)
	}
	if _, ok := rec.Cause(); !ok {
		t.Fatal("wrapped error should surface as cause")
	}
}

func TestExtractRecord_NotStatus(t *testing.T) {
	if _, ok := ExtractRecord(nil); ok {
		t.Fatal("nil error")
	}
	if _, ok := ExtractRecord(errors.New("plain")); ok {
		t.Fatal("plain error")
	}
}
