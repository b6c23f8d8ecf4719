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

// Package services contains the business logic that sits between the HTTP
// surface and the pure context-builder core. This file defines the
// AdvisorService: request validation, rate limiting, running the context
// builder workflow, and assembling the final advisor prompt from the
// rendered context block.
//
// The service is the "prompt-construction layer" the core treats as an
// external collaborator: the core prepares the context payload, the
// service merges it with the configured prompt template. Calling the LLM
// provider with the result stays out of scope entirely.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jaycherian/go-screenplay-advisor/internal/config"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/budget"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/workflow"
)

// ErrRateLimited is returned when a build is rejected by the service's
// rate limiter. The HTTP layer maps it to 429.
var ErrRateLimited = errors.New("context build rate limit exceeded")

// defaultAdvisorTemplate is used when the configuration carries no advisor
// prompt template. CONTEXT is the rendered context block, QUERY the
// writer's question.
const defaultAdvisorTemplate = `{{.CONTEXT}}

The writer asks: {{.QUERY}}`

// BuildResult bundles everything one context build produces.
type BuildResult struct {
	RequestId string                `json:"request_id"` // Unique id for log correlation.
	Payload   *model.ContextPayload `json:"payload"`    // The structured context payload.
	Context   string                `json:"context"`    // The rendered prompt block.
	Prompt    string                `json:"prompt"`     // The final advisor prompt (template applied).
}

// AdvisorService wires the context builder workflow to its runtime
// dependencies: the budget calculator configured from the model table, a
// rate limiter, and the advisor prompt template.
type AdvisorService struct {
	calculator *budget.Calculator
	workflow   *workflow.ContextBuilderWorkflow
	limiter    *rate.Limiter
	template   *template.Template
}

// NewAdvisorService builds the service from configuration: the compiled-in
// window table merged with the [models] section, the [budget] reserves,
// the application rate limits, and the advisor template (falling back to
// the default when unconfigured).
//
// Inputs:
//   - cfg: The loaded application configuration.
//
// Outputs:
//   - *AdvisorService: The ready service.
//   - error: Non-nil when the configured template does not parse.
func NewAdvisorService(cfg *config.Config) (*AdvisorService, error) {
	overrides := make(map[string]int, len(cfg.Models))
	for id, m := range cfg.Models {
		overrides[id] = m.ContextWindow
	}
	windows := budget.DefaultWindows().Merge(overrides)

	reserves := budget.Reserves{
		SystemPrompt:    cfg.Budget.SystemPromptReserve,
		UserMessage:     cfg.Budget.UserMessageReserve,
		Response:        cfg.Budget.ResponseReserve,
		FormatOverhead:  cfg.Budget.FormatOverhead,
		SafetyMargin:    cfg.Budget.SafetyMargin,
		MinContentChars: cfg.Budget.MinContentChars,
		MaxContentChars: cfg.Budget.MaxContentChars,
	}
	calculator := budget.NewCalculator(windows, reserves)

	templateText := cfg.PromptTemplates.Advisor
	if templateText == "" {
		templateText = defaultAdvisorTemplate
	}
	tmpl, err := template.New("advisor").Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse advisor prompt template: %w", err)
	}

	return &AdvisorService{
		calculator: calculator,
		workflow:   workflow.NewContextBuilderWorkflow("context-builder", calculator),
		limiter:    rate.NewLimiter(rate.Limit(cfg.Application.RateLimit), cfg.Application.RateBurst),
		template:   tmpl,
	}, nil
}

// Windows exposes the effective model window table for the models endpoint.
func (s *AdvisorService) Windows() budget.WindowTable {
	return s.calculator.Windows()
}

// BuildContext validates the request, applies the rate limit, runs the
// context builder workflow, and assembles the final prompt.
//
// A missing model id is rejected here even though the core would silently
// fall back to the default window: at the service boundary an absent id is
// a malformed request, and failing it loudly keeps the core's fail-open
// behavior from masking broken callers.
//
// Inputs:
//   - ctx: The request-scoped Go context (tracing, cancellation).
//   - req: The context request.
//
// Outputs:
//   - *BuildResult: The payload, rendered context, and final prompt.
//   - error: Validation or rate-limit errors only; the build itself
//     cannot fail.
func (s *AdvisorService) BuildContext(ctx context.Context, req *model.ContextRequest) (*BuildResult, error) {
	if req == nil {
		return nil, errors.New("context request is required")
	}
	if req.ModelId == "" {
		return nil, errors.New("model_id is required")
	}
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	requestId := uuid.New().String()
	payload, rendered := s.workflow.Run(ctx, req)

	prompt, err := s.assemblePrompt(rendered, req.Query)
	if err != nil {
		// Template execution over two strings should not fail; log and
		// degrade to the bare context block rather than failing the build.
		slog.ErrorContext(ctx, "advisor template execution failed", "request_id", requestId, "error", err)
		prompt = rendered
	}

	slog.InfoContext(ctx, "context build completed",
		"request_id", requestId,
		"type", payload.Type,
		"estimated_pages", payload.EstimatedPages,
		"model_id", req.ModelId,
	)

	return &BuildResult{
		RequestId: requestId,
		Payload:   payload,
		Context:   rendered,
		Prompt:    prompt,
	}, nil
}

// assemblePrompt executes the advisor template over the rendered context
// block and the writer's query.
func (s *AdvisorService) assemblePrompt(rendered, query string) (string, error) {
	vocabulary := map[string]string{
		"CONTEXT": rendered,
		"QUERY":   query,
	}
	var doc bytes.Buffer
	if err := s.template.Execute(&doc, vocabulary); err != nil {
		return "", err
	}
	return doc.String(), nil
}
