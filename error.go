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
	"fmt"
	"runtime"
	"strings"

	"dirpx.dev/errnotation/apis"
)

// Error is a ready-made error-like value for Go code.
//
// It carries:
//   - Name: error kind, e.g. "TypeError" (DefaultName when empty);
//   - Message: human-oriented description;
//   - Stack: optional trace text, see WithStack;
//   - LineNumber/ColumnNumber: optional explicit position (both must be set);
//   - Cause: optional underlying cause of any type;
//   - Props: arbitrary extra properties copied into the record.
//
// All mutation helpers (WithX) return a shallow copy, so Error instances
// can be safely shared and modified in a functional style.
type Error struct {
	Name         string
	Message      string
	Stack        string
	LineNumber   int
	ColumnNumber int

	// Cause may be another error, a string, or any other value. Only error
	// causes take part in errors.Is / errors.As.
	Cause any

	// Props is treated as immutable: WithProp/WithProps always copy it.
	Props map[string]any
}

// Compile-time capability checks.
var (
	_ apis.Messager   = (*Error)(nil)
	_ apis.Namer      = (*Error)(nil)
	_ apis.Stacker    = (*Error)(nil)
	_ apis.Positioner = (*Error)(nil)
	_ apis.Causer     = (*Error)(nil)
	_ apis.Propertied = (*Error)(nil)
)

// New is a convenience constructor for Error.
//
// Usage:
//
//	return errnotation.New("RangeError", "page out of range",
//	    errnotation.WithPropOption("page", 12),
//	    errnotation.WithStackOption(),
//	)
//
// It always returns a *new* Error and applies all provided options in order.
func New(name, msg string, opts ...ErrorOption) *Error {
	e := &Error{Name: name, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface as "<name>: <message>".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.ErrorName(), e.Message)
}

// Unwrap returns the cause when it is an error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	err, _ := e.Cause.(error)
	return err
}

func (e *Error) ErrorMessage() string { return e.Message }
func (e *Error) ErrorStack() string   { return e.Stack }
func (e *Error) ErrorCause() any      { return e.Cause }

func (e *Error) ErrorName() string {
	if e.Name == "" {
		return DefaultName
	}
	return e.Name
}

func (e *Error) ErrorPosition() (line, column int) { return e.LineNumber, e.ColumnNumber }

func (e *Error) ErrorProperties() map[string]any { return e.Props }

// WithName returns a shallow copy of e with a replaced name.
func (e *Error) WithName(name string) *Error {
	cp := *e
	cp.Name = name
	return &cp
}

// WithMessage returns a shallow copy of e with a replaced message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithProp returns a shallow copy of e with one extra property.
//
// The method always copies the map to preserve immutability.
func (e *Error) WithProp(k string, v any) *Error {
	cp := *e
	if len(cp.Props) == 0 {
		cp.Props = map[string]any{k: v}
		return &cp
	}
	m := make(map[string]any, len(cp.Props)+1)
	for k0, v0 := range cp.Props {
		m[k0] = v0
	}
	m[k] = v
	cp.Props = m
	return &cp
}

// WithProps returns a shallow copy of e with all kv merged into Props,
// kv taking precedence on key conflicts.
func (e *Error) WithProps(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Props)+len(kv))
	for k0, v0 := range cp.Props {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Props = m
	return &cp
}

// WithCause returns a shallow copy of e with the given cause attached.
// A nil cause returns e unchanged.
func (e *Error) WithCause(cause any) *Error {
	if cause == nil {
		return e
	}
	cp := *e
	cp.Cause = cause
	return &cp
}

// WithPosition returns a shallow copy of e with an explicit position that
// takes precedence over anything parsed from the stack.
func (e *Error) WithPosition(line, column int) *Error {
	cp := *e
	cp.LineNumber = line
	cp.ColumnNumber = column
	return &cp
}

// WithStack returns a shallow copy of e carrying the caller's stack.
//
// The trace is rendered in the browser convention the stack parser reads:
//
//	RangeError: page out of range
//	    at main.load (/src/app/main.go:42)
//	    at main.main (/src/app/main.go:17)
func (e *Error) WithStack() *Error {
	return e.withStack(1)
}

// maxStackDepth bounds capture on exceptional paths.
const maxStackDepth = 64

// withStack captures frames starting skip levels above its caller.
func (e *Error) withStack(skip int) *Error {
	cp := *e
	cp.Stack = cp.Error() + captureStack(skip+1)
	return &cp
}

// captureStack returns "\n    at fn (file:line)" lines for the goroutine's
// stack, skipping runtime.Callers, captureStack and skip further frames.
func captureStack(skip int) string {
	pc := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pc[:n])

	var b strings.Builder
	for {
		fr, more := frames.Next()
		fn := fr.Function
		if fn == "" {
			fn = "<unknown>"
		}
		_, _ = fmt.Fprintf(&b, "\n    at %s (%s:%d)", fn, fr.File, fr.Line)
		if !more {
			break
		}
	}
	return b.String()
}
