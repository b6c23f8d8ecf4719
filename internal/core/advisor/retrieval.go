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

// This file implements query-driven scene retrieval for very long
// documents. Scoring is fixed keyword heuristics, biased toward recall over
// precision: it is better to hand the model a loosely related scene than to
// miss the one the writer is asking about. Matches are taken in document
// order, not ranked by strength; the first qualifying scenes win.
package advisor

import (
	"strings"

	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/screenplay"
)

// Retrieval budget and sizing constants.
const (
	// RetrievalBudgetShare is the fraction of the character budget that
	// retrieved scene content may consume in aggregate.
	RetrievalBudgetShare = 0.3
	// MaxRelevantScenes caps how many scenes retrieval returns.
	MaxRelevantScenes = 3
	// MinExcerptChars is the smallest excerpt worth including; scenes past
	// the point where this minimum no longer fits are dropped entirely
	// rather than truncated to near-zero.
	MinExcerptChars = 500
	// TruncationMarker is appended to scene content cut off by the budget.
	TruncationMarker = "[... scene continues ...]"
)

// locationNouns are common location words checked against both the scene
// heading and the query.
var locationNouns = []string{
	"office", "house", "car", "street", "room",
	"shop", "restaurant", "park", "hospital", "school",
}

// craftTerms are generic screenplay-craft words. A query containing any of
// them matches every scene, a deliberately broad catch-all.
var craftTerms = []string{"scene", "pacing", "dialogue", "conflict", "tension", "moment"}

// actPhrases maps act numbers to the query phrasings that reference them.
var actPhrases = map[int][]string{
	1: {"act 1", "first act"},
	2: {"act 2", "second act", "middle"},
	3: {"act 3", "third act", "final act"},
}

// FindRelevantScenes returns up to MaxRelevantScenes scenes judged relevant
// to the query, in document order, with aggregate content bounded to
// RetrievalBudgetShare of maxContentChars. An empty query yields an empty
// list; the structural sections still carry the document's shape.
//
// Inputs:
//   - document: The full screenplay text.
//   - query: The writer's free-text question, may be empty.
//   - characters: The document-wide character list (from the structure
//     extraction, so it is not recomputed here).
//   - maxContentChars: The overall character budget for the request.
//
// Outputs:
//   - []*model.RelevantScene: Matched scenes, possibly truncated; never nil.
func FindRelevantScenes(document, query string, characters []string, maxContentChars int) []*model.RelevantScene {
	out := make([]*model.RelevantScene, 0, MaxRelevantScenes)
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if len(queryLower) == 0 {
		return out
	}

	scenes := screenplay.ExtractScenes(document)
	queryActs := actsMentioned(queryLower)
	remaining := int(float64(maxContentChars) * RetrievalBudgetShare)

	for _, scene := range scenes {
		if len(out) == MaxRelevantScenes {
			break
		}
		if !sceneMatches(scene, queryLower, characters, queryActs) {
			continue
		}

		content := scene.Content
		switch {
		case len(content) <= remaining:
			remaining -= len(content)
		case remaining >= MinExcerptChars:
			content = content[:remaining-len(TruncationMarker)] + TruncationMarker
			remaining = 0
		default:
			// Not even a minimum excerpt fits; everything past here drops.
			return out
		}

		out = append(out, &model.RelevantScene{
			Heading:    scene.Heading,
			Content:    content,
			LineNumber: scene.LineNumber,
			PageNumber: scene.PageNumber,
		})
	}
	return out
}

// sceneMatches applies the four relevance heuristics in turn.
func sceneMatches(scene screenplay.Scene, queryLower string, characters []string, queryActs map[int]bool) bool {
	// Character match: a name mentioned in the query that also appears in
	// the scene heading.
	for _, name := range characters {
		if strings.Contains(queryLower, strings.ToLower(name)) && strings.Contains(scene.Heading, name) {
			return true
		}
	}

	// Act match: the query references an act the scene falls in. Scene acts
	// here use fixed page cutoffs (25/75), a separate convention from the
	// locator's page-ratio thresholds; the two intentionally coexist.
	if len(queryActs) > 0 && queryActs[actForPage(scene.PageNumber)] {
		return true
	}

	// Location match: a common location noun shared by heading and query.
	headingLower := strings.ToLower(scene.Heading)
	for _, noun := range locationNouns {
		if strings.Contains(headingLower, noun) && strings.Contains(queryLower, noun) {
			return true
		}
	}

	// Craft-term catch-all: generic screenwriting vocabulary matches any scene.
	for _, term := range craftTerms {
		if strings.Contains(queryLower, term) {
			return true
		}
	}
	return false
}

// actsMentioned detects which act numbers a lowercased query refers to.
func actsMentioned(queryLower string) map[int]bool {
	out := make(map[int]bool)
	for act, phrases := range actPhrases {
		for _, phrase := range phrases {
			if strings.Contains(queryLower, phrase) {
				out[act] = true
				break
			}
		}
	}
	return out
}

// actForPage assigns an act from a fixed page cutoff: pages through 25 are
// act 1, through 75 act 2, beyond that act 3.
func actForPage(page int) int {
	switch {
	case page <= 25:
		return 1
	case page <= 75:
		return 2
	default:
		return 3
	}
}
