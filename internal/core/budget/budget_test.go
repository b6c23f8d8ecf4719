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

package budget_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/go-screenplay-advisor/internal/core/budget"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, budget.EstimateTokens(""))
	assert.Equal(t, 1, budget.EstimateTokens("a"))
	assert.Equal(t, 1, budget.EstimateTokens("abcd"))
	assert.Equal(t, 2, budget.EstimateTokens("abcde"))
	assert.Equal(t, 25, budget.EstimateTokens(strings.Repeat("x", 100)))
}

func TestContextWindowLookup(t *testing.T) {
	calc := budget.NewCalculator(nil, budget.DefaultReserves())

	assert.Equal(t, 8192, calc.ContextWindow("gpt-4"))
	assert.Equal(t, 200000, calc.ContextWindow("claude-sonnet-4"))
	assert.Equal(t, 2000000, calc.ContextWindow("gemini-1.5-pro"))

	// Unknown and empty identifiers fail open to the default window rather
	// than erroring, so a new model id never breaks context building.
	assert.Equal(t, budget.DefaultContextWindow, calc.ContextWindow("some-future-model"))
	assert.Equal(t, budget.DefaultContextWindow, calc.ContextWindow(""))
}

func TestWindowTableMerge(t *testing.T) {
	table := budget.DefaultWindows().Merge(map[string]int{
		"gpt-4":        999,
		"brand-new-llm": 42000,
	})

	assert.Equal(t, 999, table.ContextWindow("gpt-4"))
	assert.Equal(t, 42000, table.ContextWindow("brand-new-llm"))
	// Unmerged entries are untouched.
	assert.Equal(t, 128000, table.ContextWindow("gpt-4o"))
	// The source table is not mutated.
	assert.Equal(t, 8192, budget.DefaultWindows().ContextWindow("gpt-4"))
}

func TestMaxContentCharsEmptyConversation(t *testing.T) {
	calc := budget.NewCalculator(nil, budget.DefaultReserves())

	// 128000 window, 8000 reserved, nothing consumed:
	// 120000 * 4 * 0.8 = 384000 characters.
	assert.Equal(t, 384000, calc.MaxContentChars("gpt-4o", nil, "", ""))
}

func TestMaxContentCharsHistoryShrinksBudget(t *testing.T) {
	calc := budget.NewCalculator(nil, budget.DefaultReserves())

	empty := calc.MaxContentChars("gpt-4o", nil, "", "")
	history := []model.ChatMessage{
		{Role: "user", Content: strings.Repeat("q", 40000)},
		{Role: "assistant", Content: strings.Repeat("a", 40000)},
	}
	full := calc.MaxContentChars("gpt-4o", history, "", "")

	assert.Less(t, full, empty)
	// 40000 chars is 10000 tokens per turn: 100000 * 4 * 0.8 = 320000.
	assert.Equal(t, 320000, full)
}

func TestMaxContentCharsMinimumClamp(t *testing.T) {
	calc := budget.NewCalculator(nil, budget.DefaultReserves())

	// gpt-4's 8192 window barely covers the fixed reserves; the floor wins.
	assert.Equal(t, 10000, calc.MaxContentChars("gpt-4", nil, "", ""))

	// Even a conversation that overflows the window entirely gets the floor.
	history := []model.ChatMessage{{Role: "user", Content: strings.Repeat("x", 600000)}}
	assert.Equal(t, 10000, calc.MaxContentChars("gpt-4o", history, "", ""))
}

func TestMaxContentCharsMaximumClamp(t *testing.T) {
	calc := budget.NewCalculator(nil, budget.DefaultReserves())

	// A two-million-token window computes far past the ceiling.
	assert.Equal(t, 1000000, calc.MaxContentChars("gemini-1.5-pro", nil, "", ""))
}

func TestNewCalculatorDegradedReserves(t *testing.T) {
	// A zeroed reserve struct falls back to the canonical values instead of
	// producing a zero budget.
	calc := budget.NewCalculator(nil, budget.Reserves{})

	got := calc.MaxContentChars("gpt-4o", nil, "", "")
	assert.GreaterOrEqual(t, got, 10000)
	assert.LessOrEqual(t, got, 1000000)
}
