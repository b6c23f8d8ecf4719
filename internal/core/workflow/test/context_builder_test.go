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

package workflow_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/go-screenplay-advisor/internal/core/commands"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/cor"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/workflow"
	test "github.com/jaycherian/go-screenplay-advisor/internal/testutil"
)

// TestContextBuilderFullMode drives the chain directly, the way the server
// does, and checks the short-document path end to end: budget, locator,
// strategy selection, assembly, and rendering.
func TestContextBuilderFullMode(t *testing.T) {
	spanCtx, span := tracer.Start(ctx, "test-context-builder-full")
	defer span.End()

	doc := test.GetTestScreenplay()
	req := &model.ContextRequest{
		Document:       doc,
		CursorPosition: strings.Index(doc, "Rain hammers"),
		Query:          "Where should this scene go next?",
		ModelId:        "gpt-4o",
	}

	w := workflow.NewContextBuilderWorkflow("context-builder-full-test", calculator)

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(spanCtx)
	chainCtx.Add(commands.RequestParam, req)
	w.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())

	payload, ok := chainCtx.Get(commands.PayloadParam).(*model.ContextPayload)
	assert.True(t, ok)
	assert.Equal(t, model.ContextFull, payload.Type)
	assert.Equal(t, doc, payload.Document)
	assert.NotNil(t, payload.CurrentScene)
	assert.Equal(t, "EXT. STREET - NIGHT", payload.CurrentScene.Heading)

	rendered, ok := chainCtx.Get(commands.RenderedParam).(string)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(rendered, doc))
}

// A conversation that exhausts the budget forces the structured strategy
// even for a modest document; the conditional structure extractor must fire
// and the retrieval step must not.
func TestContextBuilderStructuredMode(t *testing.T) {
	doc := test.GenerateScreenplay(20, 10)
	req := &model.ContextRequest{
		Document:       doc,
		CursorPosition: 0,
		Query:          "Is the opening too slow?",
		ModelId:        "gpt-4o",
		ConversationHistory: []model.ChatMessage{
			{Role: "user", Content: strings.Repeat("x", 600000)},
		},
	}

	w := workflow.NewContextBuilderWorkflow("context-builder-structured-test", calculator)
	payload, rendered := w.Run(ctx, req)

	assert.Equal(t, model.ContextStructured, payload.Type)
	assert.NotNil(t, payload.Structure)
	assert.Equal(t, 20, payload.Structure.TotalScenes)
	assert.Empty(t, payload.RelevantScenes)
	assert.True(t, strings.Contains(rendered, "SCREENPLAY OVERVIEW: 20 scenes"))
	assert.False(t, strings.Contains(rendered, "SCENES RELEVANT TO THE QUESTION"))
}

func TestContextBuilderRetrievalMode(t *testing.T) {
	doc := test.GenerateScreenplay(130, 30)
	req := &model.ContextRequest{
		Document:       doc,
		CursorPosition: len(doc) / 2,
		Query:          "How is the pacing in the middle?",
		ModelId:        "claude-sonnet-4",
	}

	w := workflow.NewContextBuilderWorkflow("context-builder-retrieval-test", calculator)
	payload, rendered := w.Run(ctx, req)

	assert.Equal(t, model.ContextRetrieval, payload.Type)
	assert.NotNil(t, payload.Structure)
	assert.NotEmpty(t, payload.RelevantScenes)
	assert.True(t, strings.Contains(rendered, "SCENES RELEVANT TO THE QUESTION"))
	assert.True(t, strings.Contains(rendered, "more scenes ..."))
}

// An empty document flows through the whole chain without errors and comes
// out as the empty strategy with an empty rendering.
func TestContextBuilderEmptyDocument(t *testing.T) {
	w := workflow.NewContextBuilderWorkflow("context-builder-empty-test", calculator)
	payload, rendered := w.Run(ctx, &model.ContextRequest{ModelId: "gpt-4o"})

	assert.Equal(t, model.ContextEmpty, payload.Type)
	assert.Equal(t, "", rendered)
}

// Two runs over the same request produce byte-identical renderings.
func TestContextBuilderDeterministic(t *testing.T) {
	doc := test.GenerateScreenplay(60, 10)
	req := &model.ContextRequest{
		Document:       doc,
		CursorPosition: 25,
		Query:          "Does the conflict escalate?",
		ModelId:        "gpt-4o",
	}

	w := workflow.NewContextBuilderWorkflow("context-builder-determinism-test", calculator)
	_, first := w.Run(ctx, req)
	_, second := w.Run(ctx, req)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}
