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

// This file implements structural extraction: the document-wide outline
// (scene headings, global character list, act summaries) that stands in for
// the full text when the document does not fit in the token budget, and the
// scene slicing used by retrieval.
package screenplay

import (
	"fmt"
	"math"
	"strings"

	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
)

// Scene is a sliced screenplay unit: a heading line and everything up to the
// next heading or the end of the document.
type Scene struct {
	Heading    string // The trimmed heading line.
	Content    string // Full scene text, heading line included.
	LineNumber int    // 0-based line index of the heading.
	PageNumber int    // Estimated page of the heading.
}

// ExtractStructure computes the structural outline of the whole document.
// The scan is O(document length) and carries no cache; callers that need
// the structure more than once per request should reuse the returned value.
//
// A document with no scene headings produces an empty heading list and zero
// act summaries: a valid, degraded outline, never an error.
//
// Inputs:
//   - document: The full screenplay text.
//
// Outputs:
//   - *model.ScreenplayStructure: The outline, always non-nil.
func ExtractStructure(document string) *model.ScreenplayStructure {
	out := &model.ScreenplayStructure{
		SceneHeadings: make([]model.SceneHeading, 0),
		Characters:    make([]string, 0),
		ActSummaries:  make([]model.ActSummary, 0),
	}
	if len(document) == 0 {
		return out
	}

	lines := strings.Split(document, "\n")
	for i, line := range lines {
		if IsSceneHeading(line) {
			out.SceneHeadings = append(out.SceneHeadings, model.SceneHeading{
				Heading:    strings.TrimSpace(line),
				LineNumber: i,
				PageNumber: pageOfLine(i),
			})
		}
	}
	out.TotalScenes = len(out.SceneHeadings)
	out.Characters = sortedCharacters(lines)

	if out.TotalScenes > 0 {
		out.ActSummaries = summarizeActs(out.SceneHeadings, totalPagesOf(len(lines)))
	}
	return out
}

// summarizeActs splits the document into thirds by page position (0-25%,
// 25-75%, 75-100%) and produces one summary record per act: its page range,
// how many scenes fall inside it, and the first three scene headings as
// representative key scenes.
func summarizeActs(headings []model.SceneHeading, totalPages int) []model.ActSummary {
	// Page boundaries for the three acts, computed on the estimated total.
	actOneEnd := int(math.Ceil(float64(totalPages) * 0.25))
	actTwoEnd := int(math.Ceil(float64(totalPages) * 0.75))
	if actOneEnd < 1 {
		actOneEnd = 1
	}
	if actTwoEnd < actOneEnd {
		actTwoEnd = actOneEnd
	}

	bounds := []struct {
		act   int
		first int
		last  int
	}{
		{act: 1, first: 1, last: actOneEnd},
		{act: 2, first: actOneEnd + 1, last: actTwoEnd},
		{act: 3, first: actTwoEnd + 1, last: totalPages},
	}

	out := make([]model.ActSummary, 0, 3)
	for _, b := range bounds {
		if b.first > b.last {
			// Very short documents collapse the later acts entirely.
			continue
		}
		summary := model.ActSummary{
			Act:       b.act,
			PageRange: fmt.Sprintf("%d-%d", b.first, b.last),
			KeyScenes: make([]string, 0, 3),
		}
		for _, h := range headings {
			if h.PageNumber < b.first || h.PageNumber > b.last {
				continue
			}
			summary.SceneCount++
			if len(summary.KeyScenes) < 3 {
				summary.KeyScenes = append(summary.KeyScenes, h.Heading)
			}
		}
		out = append(out, summary)
	}
	return out
}

// ExtractScenes slices the document into its scenes: each detected heading
// starts a scene that runs to the line before the next heading, or the end
// of the document. Text before the first heading belongs to no scene.
//
// Inputs:
//   - document: The full screenplay text.
//
// Outputs:
//   - []Scene: The scenes in document order, empty when no headings exist.
func ExtractScenes(document string) []Scene {
	out := make([]Scene, 0)
	if len(document) == 0 {
		return out
	}

	lines := strings.Split(document, "\n")
	headingLines := make([]int, 0)
	for i, line := range lines {
		if IsSceneHeading(line) {
			headingLines = append(headingLines, i)
		}
	}

	for n, start := range headingLines {
		end := len(lines)
		if n+1 < len(headingLines) {
			end = headingLines[n+1]
		}
		out = append(out, Scene{
			Heading:    strings.TrimSpace(lines[start]),
			Content:    strings.Join(lines[start:end], "\n"),
			LineNumber: start,
			PageNumber: pageOfLine(start),
		})
	}
	return out
}
