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

// ContextRenderer renders the assembled payload into the prompt-ready text
// block. Last step of the workflow; its output is the chain's result.
type ContextRenderer struct {
	cor.BaseCommand
}

// NewContextRenderer constructs the command.
func NewContextRenderer(name string) *ContextRenderer {
	out := &ContextRenderer{BaseCommand: *cor.NewBaseCommand(name)}
	out.InputParamName = PayloadParam
	return out
}

// Execute renders and stores the prompt block.
func (c *ContextRenderer) Execute(context cor.Context) {
	payload := context.Get(PayloadParam).(*model.ContextPayload)

	rendered := advisor.Render(payload)
	context.Add(RenderedParam, rendered)
	context.Add(cor.CtxOut, rendered)
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}
