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
	"github.com/jaycherian/go-screenplay-advisor/internal/core/budget"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/cor"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
)

// BudgetCalculator computes the character budget for the request's model
// and conversation and publishes it for the strategy selector. First step
// of the workflow; it cannot fail; unknown models use the fallback window.
type BudgetCalculator struct {
	cor.BaseCommand
	calculator *budget.Calculator
}

// NewBudgetCalculator constructs the command around a budget calculator.
func NewBudgetCalculator(name string, calculator *budget.Calculator) *BudgetCalculator {
	out := &BudgetCalculator{
		BaseCommand: *cor.NewBaseCommand(name),
		calculator:  calculator,
	}
	out.InputParamName = RequestParam
	return out
}

// Execute reads the request and stores the computed character budget.
func (c *BudgetCalculator) Execute(context cor.Context) {
	req := context.Get(RequestParam).(*model.ContextRequest)

	maxChars := c.calculator.MaxContentChars(
		req.ModelId,
		req.ConversationHistory,
		req.SystemPromptBase,
		req.Query,
	)

	context.Add(MaxContentCharsParam, maxChars)
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}
