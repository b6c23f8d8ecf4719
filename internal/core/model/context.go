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

// Package model defines the core data structures for the application.
// This file contains the structs that flow through a single context build:
// the request, the located scene, and the final context payload. These
// objects are transient: they are computed fresh on every call, never
// cached or mutated, and are purely derived from their inputs.
package model

// ContextType identifies which of the four mutually exclusive context
// assembly strategies produced a payload. Callers must branch on this value
// before reading the strategy-specific fields.
type ContextType string

const (
	// ContextEmpty means the document was missing or empty; no content fields are set.
	ContextEmpty ContextType = "empty"
	// ContextFull means the entire document fit in budget and is included verbatim.
	ContextFull ContextType = "full"
	// ContextStructured means the document is represented by a structural outline.
	ContextStructured ContextType = "structured"
	// ContextRetrieval means the outline is supplemented by query-relevant scene excerpts.
	ContextRetrieval ContextType = "retrieval"
)

// CursorUnset is the sentinel for "no cursor position supplied". JSON
// requests that omit the cursor field decode to this value.
const CursorUnset = -1

// ChatMessage is a single turn of prior conversation between the writer and
// the advisor. Only the content length matters to the budget calculator;
// the role is carried for the prompt-construction layer.
type ChatMessage struct {
	Role    string `json:"role"`    // "user" or "assistant".
	Content string `json:"content"` // The text of the turn.
}

// ContextRequest carries every input of a context build. The document is
// treated as an immutable string at call time; there is no entity behind it.
type ContextRequest struct {
	Document            string        `json:"document"`                        // The full screenplay text.
	CursorPosition      int           `json:"cursor_position"`                 // 0-based character offset, CursorUnset when absent.
	Query               string        `json:"query,omitempty"`                 // Free-text question driving retrieval, may be empty.
	ModelId             string        `json:"model_id"`                        // The LLM identifier used for the window lookup.
	ConversationHistory []ChatMessage `json:"conversation_history,omitempty"`  // Prior turns, oldest first.
	SystemPromptBase    string        `json:"system_prompt_base,omitempty"`    // The fixed system prompt the caller will prepend.
}

// SceneContext describes where the writer currently is in the document. It
// is produced by the scene/cursor locator and is nil when the document is
// empty or no cursor was supplied.
type SceneContext struct {
	Heading             string   `json:"heading"`               // Nearest preceding scene heading, or "Unknown Scene".
	Act                 int      `json:"act"`                   // Estimated act (1..3) by page ratio.
	Characters          []string `json:"characters"`            // Deduplicated character names seen in the scene.
	Content             string   `json:"content"`               // Full text of the scene.
	ContextBeforeCursor string   `json:"context_before_cursor"` // Bounded window of text just before the cursor.
	ContextAfterCursor  string   `json:"context_after_cursor"`  // Bounded window of text just after the cursor.
	StartLine           int      `json:"start_line"`            // First line of the scene (0-based).
	EndLine             int      `json:"end_line"`              // Last line of the scene (0-based, inclusive).
	CurrentLine         int      `json:"current_line"`          // Line containing the cursor.
	PageNumber          int      `json:"page_number"`           // Estimated page of the cursor (1-based, 55 lines/page).
	TotalPages          int      `json:"total_pages"`           // Estimated page count of the document.
}

// ContextPayload is the final output of the context assembly strategy. Go
// has no untagged union, so the strategy-specific content lives in separate
// fields: Document is set only for ContextFull, Structure for
// ContextStructured and ContextRetrieval, RelevantScenes only for
// ContextRetrieval. Type is the discriminant; the invariant that the field
// shapes strictly follow Type is what callers rely on.
type ContextPayload struct {
	Type           ContextType           `json:"type"`                      // Which strategy produced this payload.
	Document       string                `json:"document,omitempty"`        // The raw document, full mode only.
	Structure      *ScreenplayStructure  `json:"structure,omitempty"`       // The structural outline, structured/retrieval modes.
	CurrentScene   *SceneContext         `json:"current_scene,omitempty"`   // The located scene, nil when no cursor was given.
	RelevantScenes []*RelevantScene      `json:"relevant_scenes,omitempty"` // Query-matched excerpts, retrieval mode only.
	EstimatedPages int                   `json:"estimated_pages"`           // ceil(len(document) / 2000).
}
