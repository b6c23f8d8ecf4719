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

// Package advisor implements the context assembly strategy: it decides how
// much of a potentially very long screenplay fits into an LLM prompt and
// which of four strategies to use, then produces the structured context
// payload and its prompt-ready rendering.
//
// Logic Flow:
//  1. An empty document short-circuits to the empty payload.
//  2. A document under the full-inclusion page limit that also fits the
//     character budget is included verbatim (cheapest, highest fidelity).
//  3. A mid-length document is represented by a structural outline, with
//     the writer's current scene carried in full.
//  4. A very long document gets the outline plus query-driven retrieval of
//     up to three relevant scenes within a bounded share of the budget.
//
// The strategy is chosen once per call; there are no transitions within a
// call, and every function here is a pure function of its inputs.
package advisor

import (
	"github.com/jaycherian/go-screenplay-advisor/internal/core/budget"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/screenplay"
)

// Strategy thresholds and page estimation constants.
const (
	// CharsPerPage is the character-count page estimate used for strategy
	// selection. Distinct from the 55-lines/page estimate the locator uses
	// for positional metadata.
	CharsPerPage = 2000
	// FullModePageLimit is the page count below which full inclusion is
	// considered (subject to the character budget as well).
	FullModePageLimit = 50
	// StructuredModePageLimit is the page count below which the structured
	// outline is used; at or beyond it, retrieval kicks in.
	StructuredModePageLimit = 120
)

// EstimatedPages estimates the page count of a document from its character
// length: ceil(len/2000). Monotonic in document length.
func EstimatedPages(document string) int {
	return (len(document) + CharsPerPage - 1) / CharsPerPage
}

// SelectType chooses the context strategy for a document of the given
// length against the given character budget. The full strategy requires
// both the page count and the budget condition to hold; a short document
// with a crowded conversation still degrades to structured.
func SelectType(documentLength, maxContentChars int) model.ContextType {
	if documentLength == 0 {
		return model.ContextEmpty
	}
	pages := (documentLength + CharsPerPage - 1) / CharsPerPage
	if pages < FullModePageLimit && documentLength <= maxContentChars {
		return model.ContextFull
	}
	if pages < StructuredModePageLimit {
		return model.ContextStructured
	}
	return model.ContextRetrieval
}

// Build runs the whole context assembly for one request: budget, strategy
// selection, scene location, structural extraction, and retrieval. It is
// the library entry point; the server hosts the same steps as a command
// chain. Build never fails: every degraded input produces a structurally
// valid payload.
//
// Inputs:
//   - req: The context request (document, cursor, query, model, history).
//   - calc: The budget calculator to consult for the character budget.
//
// Outputs:
//   - *model.ContextPayload: The assembled payload, always non-nil.
func Build(req *model.ContextRequest, calc *budget.Calculator) *model.ContextPayload {
	if req == nil || len(req.Document) == 0 {
		return &model.ContextPayload{Type: model.ContextEmpty}
	}

	maxChars := calc.MaxContentChars(req.ModelId, req.ConversationHistory, req.SystemPromptBase, req.Query)
	payload := &model.ContextPayload{
		Type:           SelectType(len(req.Document), maxChars),
		CurrentScene:   screenplay.Locate(req.Document, req.CursorPosition),
		EstimatedPages: EstimatedPages(req.Document),
	}

	switch payload.Type {
	case model.ContextFull:
		payload.Document = req.Document
	case model.ContextStructured:
		payload.Structure = screenplay.ExtractStructure(req.Document)
	case model.ContextRetrieval:
		payload.Structure = screenplay.ExtractStructure(req.Document)
		payload.RelevantScenes = FindRelevantScenes(req.Document, req.Query, payload.Structure.Characters, maxChars)
	}
	return payload
}
