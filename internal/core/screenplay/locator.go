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

// This file implements the scene/cursor locator: given the full document
// text and a cursor offset, it finds the enclosing scene, extracts short
// continuity windows around the cursor, lists the characters appearing in
// the scene, and estimates which structural act the position falls in.
//
// Logic Flow:
//  1. Split the document into lines and walk cumulative character counts
//     (one extra character per newline) until the running total passes the
//     cursor offset. That line is the cursor's line.
//  2. Scan backward from the cursor line for the nearest scene heading to
//     establish the scene start; scan forward from the next line for the
//     following heading to establish the scene end (last line when none).
//  3. Character extraction and the cursor windows are computed against the
//     scene's own content, not the whole document.
//  4. Act estimation divides the cursor's estimated page by the total page
//     count, with thresholds at 25% and 75%.
package screenplay

import (
	"strings"

	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
)

// Cursor window sizes, in characters, measured within the scene's content.
const (
	beforeWindowChars = 150
	afterWindowChars  = 200
)

// Locate finds the scene enclosing the given cursor position and returns a
// fully populated SceneContext.
//
// Locate never fails: a nil return means only that the document was empty
// or no cursor was supplied (cursor < 0), and the caller must treat that as
// "no context available" rather than an error. A cursor beyond the end of
// the document degrades to the final scene.
//
// Inputs:
//   - document: The full screenplay text.
//   - cursorPosition: 0-based character offset of the cursor, or
//     model.CursorUnset when the caller has no cursor.
//
// Outputs:
//   - *model.SceneContext: The located scene, or nil when no context is available.
func Locate(document string, cursorPosition int) *model.SceneContext {
	if len(document) == 0 || cursorPosition < 0 {
		return nil
	}

	lines := strings.Split(document, "\n")

	// Walk cumulative character counts to find the cursor's line. Each line
	// contributes its length plus one for the newline that followed it. A
	// cursor past the end of the document falls through to the last line.
	currentLine := len(lines) - 1
	running := 0
	for i, line := range lines {
		running += len(line) + 1
		if running > cursorPosition {
			currentLine = i
			break
		}
	}

	// Scan backward for the nearest preceding scene heading.
	sceneStartLine := 0
	heading := UnknownScene
	for i := currentLine; i >= 0; i-- {
		if IsSceneHeading(lines[i]) {
			sceneStartLine = i
			heading = strings.TrimSpace(lines[i])
			break
		}
	}

	// Scan forward for the next heading; the scene ends on the line before
	// it, or on the last line of the document.
	sceneEndLine := len(lines) - 1
	for i := currentLine + 1; i < len(lines); i++ {
		if IsSceneHeading(lines[i]) {
			sceneEndLine = i - 1
			break
		}
	}

	sceneLines := lines[sceneStartLine : sceneEndLine+1]
	content := strings.Join(sceneLines, "\n")

	// Character offset of the scene start within the whole document, used to
	// translate the cursor into a scene-relative offset.
	sceneStartOffset := 0
	for i := 0; i < sceneStartLine; i++ {
		sceneStartOffset += len(lines[i]) + 1
	}
	localCursor := cursorPosition - sceneStartOffset
	if localCursor < 0 {
		localCursor = 0
	}
	if localCursor > len(content) {
		localCursor = len(content)
	}

	totalPages := totalPagesOf(len(lines))
	pageNumber := pageOfLine(currentLine)

	return &model.SceneContext{
		Heading:             heading,
		Act:                 actForPageRatio(pageNumber, totalPages),
		Characters:          extractCharacters(sceneLines),
		Content:             content,
		ContextBeforeCursor: beforeWindow(content, localCursor),
		ContextAfterCursor:  afterWindow(content, localCursor),
		StartLine:           sceneStartLine,
		EndLine:             sceneEndLine,
		CurrentLine:         currentLine,
		PageNumber:          pageNumber,
		TotalPages:          totalPages,
	}
}

// beforeWindow returns up to beforeWindowChars characters of scene content
// immediately preceding the cursor. Any scene-heading line that lands inside
// the window is stripped so the model is not tempted to repeat the heading
// when continuing the writer's text.
func beforeWindow(content string, localCursor int) string {
	start := localCursor - beforeWindowChars
	if start < 0 {
		start = 0
	}
	window := content[start:localCursor]

	kept := make([]string, 0)
	for _, line := range strings.Split(window, "\n") {
		if IsSceneHeading(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// afterWindow returns up to afterWindowChars characters of scene content
// immediately following the cursor.
func afterWindow(content string, localCursor int) string {
	end := localCursor + afterWindowChars
	if end > len(content) {
		end = len(content)
	}
	return content[localCursor:end]
}

// actForPageRatio estimates the act from the page position relative to the
// total page count: the first quarter is act 1, up to three quarters is
// act 2, and the rest is act 3. Note this ratio convention is distinct from
// the fixed-page cutoffs retrieval uses; the two are kept as separate
// computations on purpose.
func actForPageRatio(page, totalPages int) int {
	ratio := float64(page) / float64(totalPages)
	switch {
	case ratio < 0.25:
		return 1
	case ratio < 0.75:
		return 2
	default:
		return 3
	}
}
