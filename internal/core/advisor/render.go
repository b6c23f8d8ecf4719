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

// This file renders a context payload into the plain-text block that gets
// spliced into the advisor prompt. Rendering is deterministic: the same
// payload always produces the same bytes, section order is fixed per
// strategy, and the instruction sentences are fixed strings (configurable
// wording lives a layer up, in the service's prompt template).
package advisor

import (
	"fmt"
	"strings"

	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
)

// headingListAbbreviateAt is the heading-list length beyond which the
// retrieval rendering abbreviates to the first and last ten entries. The
// structured rendering always lists every heading; the asymmetry is
// intentional and load-bearing for long documents.
const headingListAbbreviateAt = 20

// Fixed instruction sentences appended per strategy.
const (
	fullInstruction = "The complete screenplay is included above. Ground every suggestion in the actual text."

	structuredInstruction = "Only the outline and the current scene are included; the full text did not fit. " +
		"Base structural advice on the outline and line-level advice on the current scene."

	retrievalInstruction = "Only the outline, the current scene, and the excerpted scenes are included. " +
		"If the writer asks about a scene not shown here, ask them to navigate to it."
)

// Render turns a context payload into its prompt-ready string. An empty
// payload renders to the empty string; callers splice the result into their
// own prompt scaffolding.
func Render(payload *model.ContextPayload) string {
	if payload == nil {
		return ""
	}
	switch payload.Type {
	case model.ContextFull:
		return renderFull(payload)
	case model.ContextStructured:
		return renderOutline(payload, false)
	case model.ContextRetrieval:
		return renderOutline(payload, true)
	default:
		return ""
	}
}

// renderFull emits the document verbatim, the instruction sentence, and a
// one-line focus note when a scene was located.
func renderFull(payload *model.ContextPayload) string {
	var b strings.Builder
	b.WriteString(payload.Document)
	b.WriteString("\n\n")
	b.WriteString(fullInstruction)
	if scene := payload.CurrentScene; scene != nil {
		fmt.Fprintf(&b, "\nThe writer is currently focused on %s (Act %d, page %d).",
			scene.Heading, scene.Act, scene.PageNumber)
	}
	return b.String()
}

// renderOutline emits the structured composition shared by the structured
// and retrieval strategies: overview header, heading list, characters, act
// summaries, the current scene in full, then (retrieval only) the excerpted
// scenes, and the closing instruction.
func renderOutline(payload *model.ContextPayload, retrieval bool) string {
	structure := payload.Structure
	if structure == nil {
		structure = &model.ScreenplayStructure{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SCREENPLAY OVERVIEW: %d scenes across an estimated %d pages.\n",
		structure.TotalScenes, payload.EstimatedPages)

	b.WriteString("\nSCENES:\n")
	writeHeadingList(&b, structure.SceneHeadings, retrieval)

	if len(structure.Characters) > 0 {
		b.WriteString("\nCHARACTERS: ")
		b.WriteString(strings.Join(structure.Characters, ", "))
		b.WriteString("\n")
	}

	for _, act := range structure.ActSummaries {
		fmt.Fprintf(&b, "\nACT %d (pages %s): %d scenes.", act.Act, act.PageRange, act.SceneCount)
		if len(act.KeyScenes) > 0 {
			fmt.Fprintf(&b, " Key scenes: %s.", strings.Join(act.KeyScenes, "; "))
		}
	}
	if len(structure.ActSummaries) > 0 {
		b.WriteString("\n")
	}

	if scene := payload.CurrentScene; scene != nil {
		fmt.Fprintf(&b, "\nCURRENT SCENE: %s (Act %d, page %d of %d):\n%s\n",
			scene.Heading, scene.Act, scene.PageNumber, scene.TotalPages, scene.Content)
	}

	if retrieval && len(payload.RelevantScenes) > 0 {
		b.WriteString("\nSCENES RELEVANT TO THE QUESTION:\n")
		for _, scene := range payload.RelevantScenes {
			fmt.Fprintf(&b, "\n%s (page %d):\n%s\n", scene.Heading, scene.PageNumber, scene.Content)
		}
	}

	b.WriteString("\n")
	if retrieval {
		b.WriteString(retrievalInstruction)
	} else {
		b.WriteString(structuredInstruction)
	}
	return b.String()
}

// writeHeadingList writes the scene heading list. In retrieval mode a list
// longer than headingListAbbreviateAt collapses to the first ten entries,
// an ellipsis line, and the last ten; structured mode always writes the
// full list.
func writeHeadingList(b *strings.Builder, headings []model.SceneHeading, retrieval bool) {
	if retrieval && len(headings) > headingListAbbreviateAt {
		for _, h := range headings[:10] {
			writeHeadingLine(b, h)
		}
		fmt.Fprintf(b, "  ... %d more scenes ...\n", len(headings)-20)
		for _, h := range headings[len(headings)-10:] {
			writeHeadingLine(b, h)
		}
		return
	}
	for _, h := range headings {
		writeHeadingLine(b, h)
	}
}

func writeHeadingLine(b *strings.Builder, h model.SceneHeading) {
	fmt.Fprintf(b, "  %s (page %d)\n", h.Heading, h.PageNumber)
}
