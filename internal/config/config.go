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

// Package config defines the data structures for application configuration,
// loaded from TOML files. It provides a structured way to manage settings
// for the HTTP server, token budgeting, the model context-window table,
// and the advisor prompt template.
//
// Structs:
//   - Budget: Reserve and clamp values for the token budget arithmetic.
//   - ModelWindow: The context-window ceiling for a single model identifier.
//   - PromptTemplates: Text templates used when assembling the final prompt.
//   - Config: The top-level struct that aggregates all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with
//     empty maps and compiled-in default budget values.
package config

// Budget holds the reserve and clamp values used by the token budget
// calculator. Every field has a compiled-in default so a bare configuration
// file still produces a working budget; the TOML values exist so operators
// can retune the reserves without a rebuild.
type Budget struct {
	SystemPromptReserve int     `toml:"system_prompt_reserve"` // Tokens held back for the system prompt.
	UserMessageReserve  int     `toml:"user_message_reserve"`  // Tokens held back for the pending user message.
	ResponseReserve     int     `toml:"response_reserve"`      // Tokens held back for the model's response.
	FormatOverhead      int     `toml:"format_overhead"`       // Tokens held back for prompt formatting scaffolding.
	SafetyMargin        float64 `toml:"safety_margin"`         // Multiplier applied to the character conversion (0 < m <= 1).
	MinContentChars     int     `toml:"min_content_chars"`     // Hard floor on the character budget.
	MaxContentChars     int     `toml:"max_content_chars"`     // Hard ceiling on the character budget.
}

// ModelWindow is one row of the model identifier to context-window table.
// The table is deliberately data, not code, so new models can be added by
// editing the TOML file without touching the budget algorithm.
type ModelWindow struct {
	ContextWindow int `toml:"context_window"` // The total token ceiling for the model.
}

// PromptTemplates holds the text templates used by the advisor service when
// merging a rendered context block with the user's question.
type PromptTemplates struct {
	Advisor string `toml:"advisor"` // Go text/template with CONTEXT and QUERY keys.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other
// configuration structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`              // The name of the application, used for telemetry resource attribution.
		GoogleProjectId string `toml:"google_project_id"` // The Google Cloud project ID for telemetry export. Empty disables export.
		Port            int    `toml:"port"`              // The TCP port the HTTP server listens on.
		RateLimit       int    `toml:"rate_limit"`        // Context builds allowed per second.
		RateBurst       int    `toml:"rate_burst"`        // Burst size for the rate limiter.
	} `toml:"application"`
	Budget          Budget                 `toml:"budget"`           // Token budget reserves and clamps.
	Models          map[string]ModelWindow `toml:"models"`           // Model context-window table, keyed by model identifier.
	PromptTemplates PromptTemplates        `toml:"prompt_templates"` // Prompt templates configuration.
}

// NewConfig is a constructor function that creates a new, initialized Config
// instance. The map must be initialized to avoid nil map writes when the
// configuration loader populates it, and the budget fields carry their
// defaults so an absent [budget] section keeps the canonical arithmetic.
//
// Outputs:
//   - *Config: A pointer to a new Config struct ready for LoadConfig.
func NewConfig() *Config {
	cfg := &Config{
		Models: make(map[string]ModelWindow),
	}
	cfg.Application.Name = "screenplay-advisor"
	cfg.Application.Port = 8080
	cfg.Application.RateLimit = 10
	cfg.Application.RateBurst = 20
	cfg.Budget = Budget{
		SystemPromptReserve: 2000,
		UserMessageReserve:  1000,
		ResponseReserve:     4000,
		FormatOverhead:      1000,
		SafetyMargin:        0.8,
		MinContentChars:     10000,
		MaxContentChars:     1000000,
	}
	return cfg
}
