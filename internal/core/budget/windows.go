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

// This file holds the model identifier to context-window table. The table is
// data, not control flow: new models are added by extending the map (or the
// [models] section of the TOML configuration, which is merged over these
// defaults), never by touching the budget arithmetic.
package budget

// DefaultContextWindow is the fallback token ceiling used when a model
// identifier is not present in the table. Lookup is fail-open: a garbage or
// typo'd identifier silently gets this value rather than an error. That
// keeps the never-throws contract but can mask a misconfigured caller, so
// the effective table is exposed over the API for operators to inspect.
const DefaultContextWindow = 128000

// WindowTable maps model identifiers to their context-window token ceilings.
type WindowTable map[string]int

// DefaultWindows returns the compiled-in window table. Figures are the
// provider-published input+output ceilings at the time of writing.
func DefaultWindows() WindowTable {
	return WindowTable{
		"gpt-3.5-turbo":        16385,
		"gpt-4":                8192,
		"gpt-4-32k":            32768,
		"gpt-4-turbo":          128000,
		"gpt-4o":               128000,
		"gpt-4o-mini":          128000,
		"o1":                   200000,
		"o1-mini":              128000,
		"claude-3-opus":        200000,
		"claude-3-5-sonnet":    200000,
		"claude-3-5-haiku":     200000,
		"claude-sonnet-4":      200000,
		"gemini-1.5-flash":     1000000,
		"gemini-1.5-pro":       2000000,
		"gemini-2.0-flash":     1000000,
		"gemini-2.5-pro":       2000000,
	}
}

// ContextWindow looks up the token ceiling for the given model identifier,
// falling back to DefaultContextWindow for unknown or empty identifiers.
func (t WindowTable) ContextWindow(modelId string) int {
	if window, ok := t[modelId]; ok && window > 0 {
		return window
	}
	return DefaultContextWindow
}

// Merge returns a copy of the table with the overrides applied on top.
// Entries with a non-positive window are ignored.
func (t WindowTable) Merge(overrides map[string]int) WindowTable {
	out := make(WindowTable, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}
