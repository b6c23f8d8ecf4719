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

// Package commands provides the concrete Command implementations of the
// context-builder workflow. Each command wraps one step of the pure core
// (budget, location, strategy selection, extraction, retrieval, rendering)
// and communicates with its neighbors through named context parameters.
//
// This file defines those parameter names. Constants rather than magic
// strings, so a typo is a compile error instead of a silent nil read.
package commands

// Context parameter keys shared by the workflow commands.
const (
	// RequestParam holds the *model.ContextRequest seeding the workflow.
	RequestParam = "__advisor_request__"
	// MaxContentCharsParam holds the int character budget.
	MaxContentCharsParam = "__max_content_chars__"
	// SceneContextParam holds the located *model.SceneContext, absent when
	// no cursor was supplied.
	SceneContextParam = "__scene_context__"
	// ContextTypeParam holds the chosen model.ContextType.
	ContextTypeParam = "__context_type__"
	// StructureParam holds the *model.ScreenplayStructure.
	StructureParam = "__structure__"
	// RelevantScenesParam holds the []*model.RelevantScene retrieval output.
	RelevantScenesParam = "__relevant_scenes__"
	// PayloadParam holds the assembled *model.ContextPayload.
	PayloadParam = "__payload__"
	// RenderedParam holds the rendered prompt block string.
	RenderedParam = "__rendered__"
)
