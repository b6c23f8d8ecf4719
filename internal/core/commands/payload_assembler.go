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

// PayloadAssembler collects the outputs of the earlier commands into the
// final ContextPayload, honoring the shape invariant: the strategy type
// strictly determines which content fields are populated.
type PayloadAssembler struct {
	cor.BaseCommand
}

// NewPayloadAssembler constructs the command.
func NewPayloadAssembler(name string) *PayloadAssembler {
	out := &PayloadAssembler{BaseCommand: *cor.NewBaseCommand(name)}
	out.InputParamName = RequestParam
	return out
}

// IsExecutable requires the request and the chosen strategy.
func (c *PayloadAssembler) IsExecutable(context cor.Context) bool {
	if context == nil || context.Get(RequestParam) == nil {
		return false
	}
	_, ok := context.Get(ContextTypeParam).(model.ContextType)
	return ok
}

// Execute assembles and stores the payload, and forwards it as the chain's
// piped output so the renderer receives it as CtxIn.
func (c *PayloadAssembler) Execute(context cor.Context) {
	req := context.Get(RequestParam).(*model.ContextRequest)
	contextType := context.Get(ContextTypeParam).(model.ContextType)

	payload := &model.ContextPayload{
		Type:           contextType,
		EstimatedPages: advisor.EstimatedPages(req.Document),
	}

	if scene, ok := context.Get(SceneContextParam).(*model.SceneContext); ok {
		payload.CurrentScene = scene
	}

	switch contextType {
	case model.ContextFull:
		payload.Document = req.Document
	case model.ContextStructured:
		payload.Structure, _ = context.Get(StructureParam).(*model.ScreenplayStructure)
	case model.ContextRetrieval:
		payload.Structure, _ = context.Get(StructureParam).(*model.ScreenplayStructure)
		payload.RelevantScenes, _ = context.Get(RelevantScenesParam).([]*model.RelevantScene)
	}

	context.Add(PayloadParam, payload)
	context.Add(cor.CtxOut, payload)
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}
