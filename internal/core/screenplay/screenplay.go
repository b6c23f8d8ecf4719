// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package screenplay contains the text analysis layer of the advisor: scene
// detection, cursor location, character extraction, and structural outlining
// over raw screenplay text.
//
// The detection here is deliberately heuristic pattern matching, not a
// screenplay-format parser. It will both over- and under-detect (a character
// cue with a lowercase age parenthetical is missed; an all-caps transition
// word absent from the stoplist is matched). That fuzziness is intentional:
// the advisor must tolerate malformed and free-form documents, and a
// stricter grammar would change behavior on exactly the inputs writers
// actually produce mid-draft.
package screenplay

import (
	"regexp"
	"sort"
	"strings"
)

// LinesPerPage is the standard screenplay formatting estimate used for all
// page arithmetic in this package.
const LinesPerPage = 55

// UnknownScene is the sentinel heading reported when no scene heading
// precedes the cursor position.
const UnknownScene = "Unknown Scene"

// headingPattern matches a scene heading line: INT./EXT./INT/EXT./I/E.
// followed by at least one whitespace character and a location.
var headingPattern = regexp.MustCompile(`^(INT\.|EXT\.|INT/EXT\.|I/E\.)\s+`)

// characterPattern matches a standalone all-caps line, the usual shape of a
// character cue. The stoplist below filters out formatting keywords that
// share this shape.
var characterPattern = regexp.MustCompile(`^[A-Z][A-Z\s]+$`)

// characterStoplist holds all-caps tokens that look like character cues but
// are screenplay formatting keywords. A candidate line containing any of
// these tokens is rejected.
var characterStoplist = map[string]bool{
	"INT":       true,
	"EXT":       true,
	"FADE":      true,
	"CUT":       true,
	"DISSOLVE":  true,
	"TO":        true,
	"BLACK":     true,
	"CONTINUED": true,
	"THE END":   true,
	"I/E":       true,
}

// IsSceneHeading reports whether the given line (after trimming) is a scene
// heading.
func IsSceneHeading(line string) bool {
	return headingPattern.MatchString(strings.TrimSpace(line))
}

// isCharacterCue reports whether a trimmed line looks like a character cue:
// standalone all-caps and free of stoplisted formatting keywords.
func isCharacterCue(trimmed string) bool {
	if !characterPattern.MatchString(trimmed) {
		return false
	}
	if characterStoplist[trimmed] {
		return false
	}
	for _, word := range strings.Fields(trimmed) {
		if characterStoplist[word] {
			return false
		}
	}
	return true
}

// extractCharacters collects the deduplicated character cues found in the
// given lines, in first-appearance order.
func extractCharacters(lines []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 || !isCharacterCue(trimmed) {
			continue
		}
		if !seen[trimmed] {
			seen[trimmed] = true
			out = append(out, trimmed)
		}
	}
	return out
}

// sortedCharacters is the document-wide variant of extractCharacters:
// the same detection, returned alphabetically sorted.
func sortedCharacters(lines []string) []string {
	out := extractCharacters(lines)
	sort.Strings(out)
	return out
}

// pageOfLine converts a 0-based line index to a 1-based estimated page.
func pageOfLine(line int) int {
	return line/LinesPerPage + 1
}

// totalPagesOf estimates the page count of a document with the given number
// of lines, never returning less than one page.
func totalPagesOf(lineCount int) int {
	pages := (lineCount + LinesPerPage - 1) / LinesPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}
