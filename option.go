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

// ParsedStackAll requests every annotated frame when passed to WithParsedStack.
const ParsedStackAll = -1

// Options controls a single Normalize call. The zero value is the default:
// position from the first matching frame, no parsedStack.
type Options struct {
	// Offset is the index of the first stack frame considered for position
	// resolution, counting frames after the header line from zero.
	Offset int

	// ParsedStack selects the "parsedStack" field: 0 omits it, a positive
	// value keeps at most that many frames, a negative value keeps all.
	ParsedStack int
}

// Option is a functional option for Normalize.
type Option func(*Options)

// WithOffset skips the first n frames when resolving the position, which
// is useful when the error was created inside a helper. Negative values
// are treated as zero.
func WithOffset(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.Offset = n
	}
}

// WithParsedStack attaches the annotated frames, truncated to n entries.
// n == 0 disables the field again; ParsedStackAll (or any negative n)
// keeps the whole trace.
func WithParsedStack(n int) Option {
	return func(o *Options) { o.ParsedStack = n }
}

// WithFullParsedStack attaches every annotated frame.
func WithFullParsedStack() Option {
	return WithParsedStack(ParsedStackAll)
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
