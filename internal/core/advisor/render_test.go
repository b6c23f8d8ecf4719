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

package advisor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/go-screenplay-advisor/internal/core/advisor"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/screenplay"
	test "github.com/jaycherian/go-screenplay-advisor/internal/testutil"
)

func mustStructure(doc string) *model.ScreenplayStructure {
	return screenplay.ExtractStructure(doc)
}

func mustScene(doc string, cursor int) *model.SceneContext {
	return screenplay.Locate(doc, cursor)
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", advisor.Render(nil))
	assert.Equal(t, "", advisor.Render(&model.ContextPayload{Type: model.ContextEmpty}))
}

func TestRenderFull(t *testing.T) {
	doc := test.GetTestScreenplay()
	req := &model.ContextRequest{
		Document:       doc,
		CursorPosition: strings.Index(doc, "Rain hammers"),
		ModelId:        "gpt-4o",
	}
	payload := advisor.Build(req, defaultCalc())

	out := advisor.Render(payload)
	assert.True(t, strings.HasPrefix(out, doc))
	assert.True(t, strings.Contains(out, "The complete screenplay is included above."))
	assert.True(t, strings.Contains(out, "currently focused on EXT. STREET - NIGHT"))
}

func TestRenderStructured(t *testing.T) {
	doc := test.GenerateScreenplay(30, 10)
	payload := &model.ContextPayload{
		Type:           model.ContextStructured,
		Structure:      mustStructure(doc),
		EstimatedPages: advisor.EstimatedPages(doc),
	}

	out := advisor.Render(payload)
	assert.True(t, strings.Contains(out, "SCREENPLAY OVERVIEW: 30 scenes"))
	assert.True(t, strings.Contains(out, "CHARACTERS: ALICE, BEN, CLARA, DESMOND, EVE"))
	assert.True(t, strings.Contains(out, "the full text did not fit"))

	// The structured rendering always lists every heading, even past the
	// point where retrieval would abbreviate.
	assert.True(t, strings.Contains(out, "INT. LOCATION 15 - DAY"))
	assert.False(t, strings.Contains(out, "more scenes ..."))
	assert.False(t, strings.Contains(out, "SCENES RELEVANT TO THE QUESTION"))
}

// The same heading count abbreviates in retrieval mode: first ten, an
// ellipsis line, last ten.
func TestRenderRetrievalAbbreviatesHeadings(t *testing.T) {
	doc := test.GenerateScreenplay(30, 10)
	payload := &model.ContextPayload{
		Type:           model.ContextRetrieval,
		Structure:      mustStructure(doc),
		EstimatedPages: advisor.EstimatedPages(doc),
		RelevantScenes: advisor.FindRelevantScenes(doc, "the pacing", nil, 100000),
	}

	out := advisor.Render(payload)
	assert.True(t, strings.Contains(out, "... 10 more scenes ..."))
	assert.True(t, strings.Contains(out, "INT. LOCATION 1 - DAY"))
	assert.True(t, strings.Contains(out, "EXT. LOCATION 30 - NIGHT"))
	assert.False(t, strings.Contains(out, "INT. LOCATION 15 - DAY (page"))

	assert.True(t, strings.Contains(out, "SCENES RELEVANT TO THE QUESTION"))
	assert.True(t, strings.Contains(out, "If the writer asks about a scene not shown here"))
}

func TestRenderIncludesCurrentScene(t *testing.T) {
	doc := test.GetTestScreenplay()
	payload := &model.ContextPayload{
		Type:           model.ContextStructured,
		Structure:      mustStructure(doc),
		CurrentScene:   mustScene(doc, strings.Index(doc, "Rain hammers")),
		EstimatedPages: advisor.EstimatedPages(doc),
	}

	out := advisor.Render(payload)
	assert.True(t, strings.Contains(out, "CURRENT SCENE"))
	assert.True(t, strings.Contains(out, "EXT. STREET - NIGHT"))
	assert.True(t, strings.Contains(out, "She's going to kill me."))
}

func TestRenderDeterministic(t *testing.T) {
	doc := test.GenerateScreenplay(25, 10)
	payload := &model.ContextPayload{
		Type:           model.ContextRetrieval,
		Structure:      mustStructure(doc),
		EstimatedPages: advisor.EstimatedPages(doc),
		RelevantScenes: advisor.FindRelevantScenes(doc, "dialogue in the middle", nil, 100000),
	}

	assert.Equal(t, advisor.Render(payload), advisor.Render(payload))
}
