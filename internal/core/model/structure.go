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

// This file defines the structural outline of a screenplay: the document-wide
// summary that stands in for full text when the document does not fit the
// token budget, and the excerpt records produced by retrieval.
package model

// SceneHeading is one detected scene heading with its position in the
// document. Headings appear in document order.
type SceneHeading struct {
	Heading    string `json:"heading"`     // The heading line text (e.g., "INT. OFFICE - DAY").
	LineNumber int    `json:"line_number"` // 0-based line index of the heading.
	PageNumber int    `json:"page_number"` // Estimated page (1-based, 55 lines/page).
}

// ActSummary describes one of the three coarse structural thirds of the
// screenplay, split by page position (0-25%, 25-75%, 75-100%).
type ActSummary struct {
	Act        int      `json:"act"`         // 1, 2, or 3.
	PageRange  string   `json:"page_range"`  // Human-readable page span (e.g., "1-12").
	SceneCount int      `json:"scene_count"` // Number of scenes falling in the act.
	KeyScenes  []string `json:"key_scenes"`  // The first 3 scene headings of the act.
}

// ScreenplayStructure is the outline computed over the whole document. It is
// recomputed on demand, costs O(document length), and carries no caching of
// its own, so callers that need it more than once per request should hold on
// to the value rather than recompute.
type ScreenplayStructure struct {
	SceneHeadings []SceneHeading `json:"scene_headings"` // Every detected heading, in document order.
	Characters    []string       `json:"characters"`     // All character-like tokens, deduplicated and sorted.
	ActSummaries  []ActSummary   `json:"act_summaries"`  // Up to 3 act records; empty when no scenes were found.
	TotalScenes   int            `json:"total_scenes"`   // Count of detected headings.
}

// RelevantScene is one scene judged relevant to a free-text query. Content
// may be truncated with a trailing marker when it would exceed its share of
// the retrieval character budget.
type RelevantScene struct {
	Heading    string `json:"heading"`     // The scene's heading line.
	Content    string `json:"content"`     // Scene text, possibly truncated.
	LineNumber int    `json:"line_number"` // 0-based line index of the heading.
	PageNumber int    `json:"page_number"` // Estimated page of the heading.
}
