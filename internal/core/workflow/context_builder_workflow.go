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

// Package workflow defines the high-level orchestrations, combining
// commands into coherent pipelines. This file implements the context
// builder workflow: the full path from a raw context request to a rendered
// prompt block.
package workflow

import (
	goctx "context"

	"github.com/jaycherian/go-screenplay-advisor/internal/core/budget"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/commands"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/cor"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
)

// ContextBuilderWorkflow orchestrates one context build as a chain of
// commands. The chain is linear and deterministic: conditional steps
// (structure extraction, retrieval) gate themselves with IsExecutable
// rather than branching the chain, so two runs over identical requests
// produce byte-identical payloads.
type ContextBuilderWorkflow struct {
	cor.BaseCommand
	calculator *budget.Calculator
	chain      cor.Chain
}

// NewContextBuilderWorkflow constructs the workflow around a budget
// calculator and assembles its command chain.
func NewContextBuilderWorkflow(name string, calculator *budget.Calculator) *ContextBuilderWorkflow {
	out := &ContextBuilderWorkflow{
		BaseCommand: *cor.NewBaseCommand(name),
		calculator:  calculator,
	}
	out.initializeChain()
	return out
}

// Execute runs the whole workflow by invoking the underlying chain.
func (w *ContextBuilderWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// initializeChain builds the command sequence. The order matters: the
// strategy selector needs the budget, retrieval needs the structure, and
// the assembler needs everything before it.
func (w *ContextBuilderWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())

	// Step 1: Resolve the model's context window and compute how many
	// characters of screenplay content this request can still afford.
	out.AddCommand(commands.NewBudgetCalculator("budget-calculator", w.calculator))

	// Step 2: Locate the scene enclosing the writer's cursor. Publishes
	// nothing when the request carries no usable cursor.
	out.AddCommand(commands.NewSceneLocator("scene-locator"))

	// Step 3: Choose the context strategy from document size and budget.
	out.AddCommand(commands.NewStrategySelector("strategy-selector"))

	// Step 4: Outline the document. Runs only for the structured and
	// retrieval strategies.
	out.AddCommand(commands.NewStructureExtractor("structure-extractor"))

	// Step 5: Retrieve query-relevant scenes. Runs only for retrieval.
	out.AddCommand(commands.NewSceneRetriever("scene-retriever"))

	// Step 6: Assemble the typed context payload from the pieces above.
	out.AddCommand(commands.NewPayloadAssembler("payload-assembler"))

	// Step 7: Render the payload into the prompt-ready text block.
	out.AddCommand(commands.NewContextRenderer("context-renderer"))

	w.chain = out
}

// Run is a convenience wrapper that executes the workflow over a fresh
// chain context and unpacks the results.
//
// Inputs:
//   - ctx: The request-scoped Go context.
//   - req: The context request to build for.
//
// Outputs:
//   - *model.ContextPayload: The assembled payload (empty-typed payload
//     for empty documents, never nil on a healthy run).
//   - string: The rendered prompt block, "" for the empty strategy.
func (w *ContextBuilderWorkflow) Run(ctx goctx.Context, req *model.ContextRequest) (*model.ContextPayload, string) {
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.RequestParam, req)

	w.Execute(chainCtx)

	payload, _ := chainCtx.Get(commands.PayloadParam).(*model.ContextPayload)
	if payload == nil {
		payload = &model.ContextPayload{Type: model.ContextEmpty}
	}
	rendered, _ := chainCtx.Get(commands.RenderedParam).(string)
	return payload, rendered
}
