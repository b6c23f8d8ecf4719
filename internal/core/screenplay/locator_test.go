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

	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/screenplay"
	test "github.com/jaycherian/go-screenplay-advisor/internal/testutil"
)

func TestLocateFirstScene(t *testing.T) {
	doc := test.GetTestScreenplay()

	// Cursor inside MARGARET's dialogue in the opening scene.
	cursor := strings.Index(doc, "He's never here")
	assert.Greater(t, cursor, 0)

	scene := screenplay.Locate(doc, cursor)
	assert.NotNil(t, scene)
	assert.Equal(t, "INT. OFFICE - DAY", scene.Heading)
	assert.Equal(t, 0, scene.StartLine)
	assert.Equal(t, []string{"MARGARET", "DEREK"}, scene.Characters)

	// The scene ends on the line before the next heading.
	assert.Equal(t, 15, scene.EndLine)
	assert.False(t, strings.Contains(scene.Content, "EXT. STREET"))
}

func TestLocateSecondScene(t *testing.T) {
	doc := test.GetTestScreenplay()

	cursor := strings.Index(doc, "Rain hammers")
	scene := screenplay.Locate(doc, cursor)
	assert.NotNil(t, scene)
	assert.Equal(t, "EXT. STREET - NIGHT", scene.Heading)
	assert.Equal(t, []string{"DEREK"}, scene.Characters)
	assert.True(t, strings.HasPrefix(scene.Content, "EXT. STREET - NIGHT"))
}

func TestLocateCursorPastEndDegradesToFinalScene(t *testing.T) {
	doc := test.GetTestScreenplay()

	scene := screenplay.Locate(doc, len(doc)+5000)
	assert.NotNil(t, scene)
	assert.Equal(t, "EXT. STREET - NIGHT", scene.Heading)
}

func TestLocateNoContextAvailable(t *testing.T) {
	assert.Nil(t, screenplay.Locate("", 10))
	assert.Nil(t, screenplay.Locate(test.GetTestScreenplay(), model.CursorUnset))
}

func TestLocateBeforeFirstHeading(t *testing.T) {
	doc := "A title page line.\nAnother line of front matter.\n\nINT. KITCHEN - DAY\n\nSomething cooks.\n"

	scene := screenplay.Locate(doc, 3)
	assert.NotNil(t, scene)
	assert.Equal(t, screenplay.UnknownScene, scene.Heading)
	assert.Equal(t, 0, scene.StartLine)
}

// The before-cursor window must never carry a scene heading line, so a
// continuation prompt cannot bait the model into repeating the heading.
func TestLocateBeforeWindowStripsHeading(t *testing.T) {
	doc := test.GetTestScreenplay()

	cursor := strings.Index(doc, "unpaid invoices")
	scene := screenplay.Locate(doc, cursor)
	assert.NotNil(t, scene)
	assert.False(t, strings.Contains(scene.ContextBeforeCursor, "INT. OFFICE"))
	assert.True(t, strings.Contains(scene.ContextBeforeCursor, "MARGARET sits"))
}

func TestLocateWindowBounds(t *testing.T) {
	doc := test.GetTestScreenplay()

	cursor := strings.Index(doc, "She slams")
	scene := screenplay.Locate(doc, cursor)
	assert.NotNil(t, scene)

	// The after window is a verbatim slice of scene content, capped at 200
	// characters. The before window may only shrink (heading lines removed).
	assert.LessOrEqual(t, len(scene.ContextAfterCursor), 200)
	assert.LessOrEqual(t, len(scene.ContextBeforeCursor), 150)
	assert.True(t, strings.HasPrefix(scene.ContextAfterCursor, "She slams"))
}

func TestLocateActEstimation(t *testing.T) {
	// Ten estimated pages of synthetic screenplay, so the ratio thresholds
	// land on clean page numbers.
	doc := test.GenerateScreenplay(50, 5)
	lines := strings.Split(doc, "\n")
	totalPages := (len(lines) + screenplay.LinesPerPage - 1) / screenplay.LinesPerPage
	assert.Greater(t, totalPages, 4)

	// Cursor at the top of the document sits in act 1.
	early := screenplay.Locate(doc, 0)
	assert.NotNil(t, early)
	assert.Equal(t, 1, early.Act)

	// Cursor at the very end sits in act 3.
	late := screenplay.Locate(doc, len(doc)-1)
	assert.NotNil(t, late)
	assert.Equal(t, 3, late.Act)
	assert.Equal(t, totalPages, late.TotalPages)
}

func TestIsSceneHeading(t *testing.T) {
	assert.True(t, screenplay.IsSceneHeading("INT. OFFICE - DAY"))
	assert.True(t, screenplay.IsSceneHeading("EXT. STREET - NIGHT"))
	assert.True(t, screenplay.IsSceneHeading("INT/EXT. CAR - DUSK"))
	assert.True(t, screenplay.IsSceneHeading("I/E. TRAIN - CONTINUOUS"))
	assert.True(t, screenplay.IsSceneHeading("  INT. PADDED - DAY  "))

	assert.False(t, screenplay.IsSceneHeading("INTERIOR OFFICE"))
	assert.False(t, screenplay.IsSceneHeading("INT."))
	assert.False(t, screenplay.IsSceneHeading("FADE IN:"))
	assert.False(t, screenplay.IsSceneHeading("MARGARET"))
}
