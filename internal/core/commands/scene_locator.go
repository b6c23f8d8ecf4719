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
	"github.com/jaycherian/go-screenplay-advisor/internal/core/cor"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/screenplay"
)

// SceneLocator finds the scene enclosing the writer's cursor and publishes
// the SceneContext. When the locator returns nil (empty document or no
// cursor) nothing is published; downstream steps treat the absence as "no
// context available", which is the documented degradation, not a failure.
type SceneLocator struct {
	cor.BaseCommand
}

// NewSceneLocator constructs the command.
func NewSceneLocator(name string) *SceneLocator {
	out := &SceneLocator{BaseCommand: *cor.NewBaseCommand(name)}
	out.InputParamName = RequestParam
	return out
}

// Execute runs the locator over the request document and cursor.
func (c *SceneLocator) Execute(context cor.Context) {
	req := context.Get(RequestParam).(*model.ContextRequest)

	if scene := screenplay.Locate(req.Document, req.CursorPosition); scene != nil {
		context.Add(SceneContextParam, scene)
	}
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}
