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

package stack

import (
	"regexp"
	"strconv"
	"strings"
)

// Position is a resolved source location.
//
// Line and column numbers are 1-based. ColumnNumber is zero when the frame
// did not carry a column, which is always the case for browser-style frames.
type Position struct {
	FileName     string `json:"fileName"`
	LineNumber   int    `json:"lineNumber"`
	ColumnNumber int    `json:"columnNumber,omitempty"`
}

// HasColumn reports whether the position carries a column number.
func (p Position) HasColumn() bool { return p.ColumnNumber > 0 }

// String renders the position as "file:line" or "file:line:column".
func (p Position) String() string {
	if p.HasColumn() {
		return p.FileName + ":" + strconv.Itoa(p.LineNumber) + ":" + strconv.Itoa(p.ColumnNumber)
	}
	return p.FileName + ":" + strconv.Itoa(p.LineNumber)
}

// Frame is one non-header line of a trace. Position is nil when the line
// has no recognizable location ("at Array.filter (<anonymous>)").
type Frame struct {
	Raw string `json:"raw"`
	*Position
}

// String returns the raw line text.
func (f Frame) String() string { return f.Raw }

const (
	// fileToken matches a path or URL immediately preceding ":line".
	//
	// The optional prefix accepts a scheme ("https:", "file:", "webpack:")
	// or a drive letter ("C:"), and after "//" an authority with an
	// optional ":port". The remainder is any run of characters other than
	// whitespace, colons and parentheses.
	fileToken = `((?:[A-Za-z][A-Za-z0-9+.\-]*:(?://[^\s/:()]*(?::\d+)?)?)?[^\s:()]+)`

	nodeFmt    = fileToken + `:(\d+):(\d+)`
	browserFmt = fileToken + `:(\d+)`
)

var (
	nodeRe    = regexp.MustCompile(nodeFmt)
	browserRe = regexp.MustCompile(browserFmt)

	// atFrameRe matches the "fn@" prefix of a Firefox/Safari frame
	// ("change@index.html:46:3", "@index.html:53:1").
	atFrameRe = regexp.MustCompile(`^[^\s@()]*@`)
)

// ParsePosition returns the position of the first frame at or after offset
// that matches either line shape.
//
// offset counts non-header lines from zero; a negative offset is treated as
// zero. The boolean result is false when no line at or after offset has a
// position.
func ParsePosition(text string, offset int) (Position, bool) {
	if offset < 0 {
		offset = 0
	}
	lines := Lines(text)
	for i := offset; i < len(lines); i++ {
		if p, ok := parseLine(lines[i]); ok {
			return p, true
		}
	}
	return Position{}, false
}

// AnnotateAll returns one Frame per non-header line, in trace order.
// Every line is matched independently; unmatched lines keep only Raw.
func AnnotateAll(text string) []Frame {
	lines := Lines(text)
	if len(lines) == 0 {
		return nil
	}
	out := make([]Frame, 0, len(lines))
	for _, l := range lines {
		f := Frame{Raw: l}
		if p, ok := parseLine(l); ok {
			f.Position = &p
		}
		out = append(out, f)
	}
	return out
}

// Lines splits a trace into its frame lines.
//
// Lines are trimmed, blank lines are dropped and the header line is removed.
// The first line is kept only when it is shaped like a frame: it starts
// with "at " or has the "fn@file:line" form. A header such as
// "Error: dial tcp 10.0.0.1:5432: refused" is always dropped.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	if len(out) > 0 && !isFrameLine(out[0]) {
		out = out[1:]
	}
	return out
}

func isFrameLine(line string) bool {
	if strings.HasPrefix(line, "at ") {
		return true
	}
	if atFrameRe.MatchString(line) {
		_, ok := parseLine(line)
		return ok
	}
	return false
}

// parseLine tries node-style first and falls back to browser-style.
// The function name of an "fn@file" frame is cut before matching.
func parseLine(line string) (Position, bool) {
	if loc := atFrameRe.FindStringIndex(line); loc != nil {
		line = line[loc[1]:]
	}
	if p, ok := match(nodeRe, line, true); ok {
		return p, true
	}
	return match(browserRe, line, false)
}

// match returns the leftmost acceptable candidate on the line. Candidates
// whose file token is purely numeric ("(3:4)" in a header) are skipped.
func match(re *regexp.Regexp, line string, withColumn bool) (Position, bool) {
	for _, m := range re.FindAllStringSubmatch(line, -1) {
		if isDigits(m[1]) {
			continue
		}
		ln, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		p := Position{FileName: m[1], LineNumber: ln}
		if withColumn {
			col, err := strconv.Atoi(m[3])
			if err != nil {
				continue
			}
			p.ColumnNumber = col
		}
		return p, true
	}
	return Position{}, false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
