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
	"github.com/jaycherian/go-screenplay-advisor/internal/core/cor"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/screenplay"
)

// StructureExtractor computes the document-wide outline. It runs only for
// the structured and retrieval strategies; the extraction is O(document)
// and the full and empty strategies have no use for it.
type StructureExtractor struct {
	cor.BaseCommand
}

// NewStructureExtractor constructs the command.
func NewStructureExtractor(name string) *StructureExtractor {
	out := &StructureExtractor{BaseCommand: *cor.NewBaseCommand(name)}
	out.InputParamName = RequestParam
	return out
}

// IsExecutable gates the command to the outline-bearing strategies.
func (c *StructureExtractor) IsExecutable(context cor.Context) bool {
	if context == nil || context.Get(RequestParam) == nil {
		return false
	}
	t, ok := context.Get(ContextTypeParam).(model.ContextType)
	return ok && (t == model.ContextStructured || t == model.ContextRetrieval)
}

// Execute extracts and stores the structure.
func (c *StructureExtractor) Execute(context cor.Context) {
	req := context.Get(RequestParam).(*model.ContextRequest)

	context.Add(StructureParam, screenplay.ExtractStructure(req.Document))
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}
