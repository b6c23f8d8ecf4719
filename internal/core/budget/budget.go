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

// Package budget implements the token budget calculator: it estimates how
// many tokens a prompt already consumes and how many characters of
// screenplay content can still safely be included before hitting a model's
// context window.
//
// Token estimation is a fixed characters-per-token heuristic, not a real
// tokenizer. That is approximate by design: it keeps the package dependency
// free and cheap enough to run on every keystroke-driven call. The error
// direction that matters is undercounting (which would overfill the
// window); the safety margin below exists to absorb it.
package budget

import "github.com/jaycherian/go-screenplay-advisor/internal/core/model"

// CharsPerToken is the fixed heuristic ratio between characters and tokens.
// Kept as a single named constant so the estimator can be swapped for a
// real tokenizer later without touching the budget arithmetic.
const CharsPerToken = 4

// Reserves holds the fixed token headroom subtracted from the context
// window before any screenplay content is admitted, plus the clamps applied
// to the final character budget.
type Reserves struct {
	SystemPrompt    int     // Headroom for the system prompt.
	UserMessage     int     // Headroom for the pending user message.
	Response        int     // Headroom for the model's response.
	FormatOverhead  int     // Headroom for prompt formatting scaffolding.
	SafetyMargin    float64 // Multiplier on the character conversion; 0.8 is a deliberate 20% guard against estimation error, not a rounding artifact.
	MinContentChars int     // Hard floor so a very full conversation still gets a usable slice.
	MaxContentChars int     // Hard ceiling against pathological unbounded strings.
}

// DefaultReserves returns the canonical reserve configuration: roughly
// 8,000 tokens of fixed overhead and the [10,000, 1,000,000] character
// clamp.
func DefaultReserves() Reserves {
	return Reserves{
		SystemPrompt:    2000,
		UserMessage:     1000,
		Response:        4000,
		FormatOverhead:  1000,
		SafetyMargin:    0.8,
		MinContentChars: 10000,
		MaxContentChars: 1000000,
	}
}

// Calculator binds a window table to a reserve configuration. The zero
// value is not usable; construct with NewCalculator.
type Calculator struct {
	windows  WindowTable
	reserves Reserves
}

// NewCalculator builds a Calculator. A nil windows table falls back to the
// compiled-in defaults, and zeroed reserves fall back to DefaultReserves,
// so partial configuration degrades to the canonical arithmetic instead of
// a broken budget.
func NewCalculator(windows WindowTable, reserves Reserves) *Calculator {
	if windows == nil {
		windows = DefaultWindows()
	}
	if reserves.SafetyMargin <= 0 || reserves.SafetyMargin > 1 {
		reserves.SafetyMargin = DefaultReserves().SafetyMargin
	}
	if reserves.MinContentChars <= 0 {
		reserves.MinContentChars = DefaultReserves().MinContentChars
	}
	if reserves.MaxContentChars < reserves.MinContentChars {
		reserves.MaxContentChars = DefaultReserves().MaxContentChars
	}
	return &Calculator{windows: windows, reserves: reserves}
}

// EstimateTokens estimates the token count of a text as ceil(len/4).
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + CharsPerToken - 1) / CharsPerToken
}

// ContextWindow resolves the token ceiling for a model identifier using the
// calculator's table, with the documented fail-open fallback.
func (c *Calculator) ContextWindow(modelId string) int {
	return c.windows.ContextWindow(modelId)
}

// Windows exposes the effective window table (for the models endpoint).
func (c *Calculator) Windows() WindowTable {
	return c.windows
}

// MaxContentChars computes how many characters of screenplay content can
// still be included in a prompt for the given model, after accounting for
// everything else the prompt must carry.
//
// The computation is:
//
//	available = window - (system + user + history tokens) - fixed reserves
//	chars     = floor(available * CharsPerToken * SafetyMargin)
//
// clamped to [MinContentChars, MaxContentChars] regardless of the computed
// value. The floor guarantees degenerate (very full) conversations still
// get a usable minimum slice. Never fails: unknown models use the fallback
// window.
//
// Inputs:
//   - modelId: The model identifier to budget for.
//   - history: Prior conversation turns; only content lengths matter.
//   - systemPromptBase: The system prompt text the caller will send.
//   - userMessage: The pending user message text.
//
// Outputs:
//   - int: The character budget, always within the clamp bounds.
func (c *Calculator) MaxContentChars(modelId string, history []model.ChatMessage, systemPromptBase string, userMessage string) int {
	window := c.windows.ContextWindow(modelId)

	consumed := EstimateTokens(systemPromptBase) + EstimateTokens(userMessage)
	for _, turn := range history {
		consumed += EstimateTokens(turn.Content)
	}

	overhead := c.reserves.SystemPrompt + c.reserves.UserMessage + c.reserves.Response + c.reserves.FormatOverhead
	available := window - consumed - overhead

	chars := int(float64(available) * CharsPerToken * c.reserves.SafetyMargin)
	if chars < c.reserves.MinContentChars {
		return c.reserves.MinContentChars
	}
	if chars > c.reserves.MaxContentChars {
		return c.reserves.MaxContentChars
	}
	return chars
}
