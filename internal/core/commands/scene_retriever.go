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

package commands

import (
	"github.com/jaycherian/go-screenplay-advisor/internal/core/advisor"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/cor"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
)

// SceneRetriever runs query-driven relevant-scene retrieval. It gates
// itself to the retrieval strategy and depends on the structure extractor
// having already published the document's character list.
type SceneRetriever struct {
	cor.BaseCommand
}

// NewSceneRetriever constructs the command.
func NewSceneRetriever(name string) *SceneRetriever {
	out := &SceneRetriever{BaseCommand: *cor.NewBaseCommand(name)}
	out.InputParamName = RequestParam
	return out
}

// IsExecutable gates the command to the retrieval strategy with a computed
// structure and budget in place.
func (c *SceneRetriever) IsExecutable(context cor.Context) bool {
	if context == nil || context.Get(RequestParam) == nil {
		return false
	}
	t, ok := context.Get(ContextTypeParam).(model.ContextType)
	return ok && t == model.ContextRetrieval &&
		context.Get(StructureParam) != nil &&
		context.Get(MaxContentCharsParam) != nil
}

// Execute retrieves and stores the relevant scenes. An empty query yields
// an empty slice, which still gets published so the payload assembler can
// distinguish "retrieval ran, nothing matched" from "retrieval skipped".
func (c *SceneRetriever) Execute(context cor.Context) {
	req := context.Get(RequestParam).(*model.ContextRequest)
	structure := context.Get(StructureParam).(*model.ScreenplayStructure)
	maxChars := context.Get(MaxContentCharsParam).(int)

	scenes := advisor.FindRelevantScenes(req.Document, req.Query, structure.Characters, maxChars)
	context.Add(RelevantScenesParam, scenes)
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}
