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

package screenplay_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/go-screenplay-advisor/internal/core/screenplay"
	test "github.com/jaycherian/go-screenplay-advisor/internal/testutil"
)

func TestExtractStructure(t *testing.T) {
	structure := screenplay.ExtractStructure(test.GetTestScreenplay())

	assert.Equal(t, 2, structure.TotalScenes)
	assert.Equal(t, "INT. OFFICE - DAY", structure.SceneHeadings[0].Heading)
	assert.Equal(t, 0, structure.SceneHeadings[0].LineNumber)
	assert.Equal(t, "EXT. STREET - NIGHT", structure.SceneHeadings[1].Heading)
	assert.Equal(t, 16, structure.SceneHeadings[1].LineNumber)

	// The document-wide character list is sorted, unlike the per-scene
	// first-appearance ordering.
	assert.Equal(t, []string{"DEREK", "MARGARET"}, structure.Characters)

	// A one-page document collapses acts two and three entirely.
	assert.Equal(t, 1, len(structure.ActSummaries))
	assert.Equal(t, 1, structure.ActSummaries[0].Act)
	assert.Equal(t, 2, structure.ActSummaries[0].SceneCount)
}

func TestExtractStructureEmptyDocument(t *testing.T) {
	structure := screenplay.ExtractStructure("")

	assert.NotNil(t, structure)
	assert.Equal(t, 0, structure.TotalScenes)
	assert.Empty(t, structure.SceneHeadings)
	assert.Empty(t, structure.Characters)
	assert.Empty(t, structure.ActSummaries)
}

func TestExtractStructureNoHeadings(t *testing.T) {
	structure := screenplay.ExtractStructure("Just prose.\nNo screenplay formatting at all.\n")

	assert.Equal(t, 0, structure.TotalScenes)
	assert.Empty(t, structure.ActSummaries)
}

func TestExtractStructureThreeActs(t *testing.T) {
	// A long synthetic screenplay spans all three act windows.
	structure := screenplay.ExtractStructure(test.GenerateScreenplay(120, 10))

	assert.Equal(t, 120, structure.TotalScenes)
	assert.Equal(t, 3, len(structure.ActSummaries))

	total := 0
	for i, act := range structure.ActSummaries {
		assert.Equal(t, i+1, act.Act)
		assert.LessOrEqual(t, len(act.KeyScenes), 3)
		total += act.SceneCount
	}
	// Every scene lands in exactly one act.
	assert.Equal(t, 120, total)

	assert.Equal(t, []string{"ALICE", "BEN", "CLARA", "DESMOND", "EVE"}, structure.Characters)
}

func TestExtractScenes(t *testing.T) {
	scenes := screenplay.ExtractScenes(test.GetTestScreenplay())

	assert.Equal(t, 2, len(scenes))
	assert.Equal(t, "INT. OFFICE - DAY", scenes[0].Heading)
	assert.Equal(t, 0, scenes[0].LineNumber)
	assert.Equal(t, "EXT. STREET - NIGHT", scenes[1].Heading)
	assert.Equal(t, 16, scenes[1].LineNumber)

	// Scene content runs up to, but not including, the next heading.
	assert.True(t, strings.Contains(scenes[0].Content, "FADE TO BLACK."))
	assert.False(t, strings.Contains(scenes[0].Content, "EXT. STREET"))
	assert.True(t, strings.Contains(scenes[1].Content, "She's going to kill me."))
}

// Transition keywords share the standalone all-caps shape of a character
// cue and must never be reported as characters, with or without trailing
// punctuation.
func TestCharacterExtractionExcludesTransitions(t *testing.T) {
	doc := "INT. OFFICE - DAY\n\n" +
		"MARGARET\n" +
		"We're done here.\n\n" +
		"FADE TO BLACK\n\n" +
		"DISSOLVE TO\n\n" +
		"EXT. STREET - NIGHT\n\n" +
		"DEREK\n" +
		"Wait.\n\n" +
		"CUT TO\n\n" +
		"THE END\n"

	structure := screenplay.ExtractStructure(doc)
	assert.Equal(t, []string{"DEREK", "MARGARET"}, structure.Characters)

	scene := screenplay.Locate(doc, strings.Index(doc, "We're done"))
	assert.NotNil(t, scene)
	assert.Equal(t, []string{"MARGARET"}, scene.Characters)
}

func TestExtractScenesIgnoresFrontMatter(t *testing.T) {
	doc := "A title line before any scene.\n\nINT. KITCHEN - DAY\n\nCooking happens.\n"
	scenes := screenplay.ExtractScenes(doc)

	assert.Equal(t, 1, len(scenes))
	assert.Equal(t, "INT. KITCHEN - DAY", scenes[0].Heading)
	assert.False(t, strings.Contains(scenes[0].Content, "title line"))
}
