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

package mapper

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"dirpx.dev/errnotation/apis"
	"google.golang.org/grpc/codes"
)

func TestDefaults_HTTP_GRPC(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	// Spot-check a few canonical defaults from defaults.go
	check := func(name string, wantHTTP int, wantGRPC codes.Code) {
		t.Helper()
		st := m.Status(name)
		if st.HTTP != wantHTTP || st.GRPC != wantGRPC {
			t.Fatalf("Status(%q) got HTTP=%d GRPC=%v; want HTTP=%d GRPC=%v",
				name, st.HTTP, st.GRPC, wantHTTP, wantGRPC)
		}
	}
	check("Error", 500, codes.Internal)
	check("RangeError", 400, codes.OutOfRange)
	check("NotFoundError", 404, codes.NotFound)
	check("TimeoutError", 504, codes.DeadlineExceeded)
	check("  SyntaxError ", 400, codes.InvalidArgument)
}

func TestPriority_OverrideOverDefault(t *testing.T) {
	m, err := New(
		WithHTTPDefault("AbortError", 408),
		WithHTTPOverride("AbortError", 499),
		WithGRPCDefault("AbortError", int(codes.Canceled)),
		WithGRPCOverride("AbortError", int(codes.Aborted)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := m.Status("AbortError")
	if st.HTTP != 499 || st.GRPC != codes.Aborted {
		t.Fatalf("override must win; got %+v", st)
	}
	if m.HTTPStatus("AbortError") != st.HTTP || m.GRPCStatus("AbortError") != st.GRPC {
		t.Fatal("Status must agree with the single-transport lookups")
	}
}

func TestUserDefault_NewName(t *testing.T) {
	m, err := New(
		WithHTTPDefault("QuotaError", 429),
		WithGRPCDefault("QuotaError", int(codes.ResourceExhausted)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if st := m.Status("QuotaError"); st.HTTP != 429 || st.GRPC != codes.ResourceExhausted {
		t.Fatalf("user default ignored: %+v", st)
	}
}

func TestFallback_UnknownName(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"", "SomethingElse", "rangeerror"} {
		if st := m.Status(name); st.HTTP != 500 || st.GRPC != codes.Internal {
			t.Fatalf("Status(%q) = %+v, want fallback", name, st)
		}
	}
}

func TestNew_InvalidRules(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty name", WithHTTPOverride("  ", 400)},
		{"http too low", WithHTTPDefault("X", 42)},
		{"http too high", WithHTTPOverride("X", 600)},
		{"grpc out of range", WithGRPCDefault("X", 17)},
		{"grpc negative", WithGRPCOverride("X", -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); !errors.Is(err, ErrInvalidRule) {
				t.Fatalf("New err = %v, want ErrInvalidRule", err)
			}
		})
	}
}

func TestExplain_Sources(t *testing.T) {
	m, err := New(WithHTTPOverride("AbortError", 499))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	exp := m.Explain("AbortError")
	if !strings.Contains(exp, "http: source=override -> 499") {
		t.Fatalf("Explain must include the override:\n%s", exp)
	}
	if !strings.Contains(exp, "grpc: source=default -> CANCELED(1)") {
		t.Fatalf("Explain must include the gRPC default:\n%s", exp)
	}
}

func TestMapper_DefaultsNotShared(t *testing.T) {
	m1, _ := New(WithHTTPDefault("Error", 503))
	m2, _ := New()
	if m1.HTTPStatus("Error") != 503 || m2.HTTPStatus("Error") != 500 {
		t.Fatal("options must not leak into package defaults")
	}
}

func TestConcurrency_MapperStatus(t *testing.T) {
	m, err := New(WithHTTPOverride("AbortError", 499))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 2000; j++ {
				_ = m.Status("AbortError")
				_ = m.Status("RangeError")
				_ = m.Explain("Unknown")
			}
		}()
	}
	wg.Wait()
}

func BenchmarkMapperStatus_Default(b *testing.B) {
	m, _ := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Status("RangeError")
	}
}

func BenchmarkMapperStatus_Fallback(b *testing.B) {
	m, _ := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Status("Unknown")
	}
}

// Ensure mapper implements apis.Mapper
func TestMapper_InterfaceSatisfaction(t *testing.T) {
	var _ apis.Mapper = (*mapper)(nil)
}
