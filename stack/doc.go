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

// Package stack extracts source positions from free-form stack-trace text.
//
// Two line conventions are recognized:
//
//   - node-style: a file token followed by ":line:column", either bare
//     ("at /app/server.js:12:7") or wrapped in parentheses after a function
//     name ("at handler (/app/server.js:12:7)");
//   - browser-style: a file token followed by ":line" only
//     ("at change (index.html:46)", "index.html:53").
//
// A file token may be a filesystem path or a URL of any scheme, including
// "scheme://host:port" authorities. Node-style wins over browser-style when
// a line could be read both ways.
//
// The first line of a trace is treated as its header ("TypeError: boom")
// and skipped, unless it carries a position itself, which is the case for
// traces that have no header at all.
package stack
