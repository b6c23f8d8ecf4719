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

// StrategySelector chooses which of the four context strategies applies to
// this request, from the document length and the character budget computed
// upstream. The choice is made once; later commands gate themselves on it.
type StrategySelector struct {
	cor.BaseCommand
}

// NewStrategySelector constructs the command.
func NewStrategySelector(name string) *StrategySelector {
	out := &StrategySelector{BaseCommand: *cor.NewBaseCommand(name)}
	out.InputParamName = RequestParam
	return out
}

// IsExecutable requires both the request and the computed budget.
func (c *StrategySelector) IsExecutable(context cor.Context) bool {
	return context != nil &&
		context.Get(RequestParam) != nil &&
		context.Get(MaxContentCharsParam) != nil
}

// Execute stores the chosen context type.
func (c *StrategySelector) Execute(context cor.Context) {
	req := context.Get(RequestParam).(*model.ContextRequest)
	maxChars := context.Get(MaxContentCharsParam).(int)

	context.Add(ContextTypeParam, advisor.SelectType(len(req.Document), maxChars))
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}
