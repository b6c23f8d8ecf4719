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

// Package test provides utility functions and sample screenplay data to
// support the application's test suite. It helps in setting up a consistent
// test environment, loading test-specific configurations, and generating
// synthetic screenplays of arbitrary length for the context builder tests.
package test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/jaycherian/go-screenplay-advisor/internal/config"
)

// StateManager acts as a simple in-memory cache for the application
// configuration during test runs. This prevents the need to reload
// configuration files for every test, speeding up the test suite.
type StateManager struct {
	config *config.Config
}

// state is a package-level variable that holds the singleton instance of
// StateManager, ensuring that the configuration is loaded only once per
// test run.
var state = &StateManager{}

// HandleErr is a simple test helper function that checks if an error is not
// nil. If an error exists, it fails the test immediately by calling
// t.Errorf. This is a convenience function to reduce boilerplate
// error-checking code in tests.
//
// Inputs:
//   - err: The error to check.
//   - t: The *testing.T object from the current test.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("Error reading config file: %v", err)
	}
}

// moduleRoot resolves the repository root from this file's location. Tests
// execute in their own package directory, so a relative "configs" path
// would resolve differently for every package; anchoring at the module
// root keeps the loader pointed at the same files everywhere.
func moduleRoot() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	// This file lives at internal/testutil/test.go.
	return filepath.Dir(filepath.Dir(filepath.Dir(file)))
}

// SetupOS configures the necessary environment variables that the
// configuration loader (`config.LoadConfig`) depends on. By setting these
// variables, we can direct the loader to use the test-specific
// configuration files (e.g., `configs/.env.test.toml`) instead of
// production or development ones.
//
// Returns:
//   - An error if setting any environment variable fails.
func SetupOS() (err error) {
	// Set the directory where the configuration files are located.
	err = os.Setenv(config.EnvConfigFilePrefix, filepath.Join(moduleRoot(), "configs"))
	if err != nil {
		return err
	}
	// Set the runtime environment identifier to "test". This causes the
	// loader to look for a file named ".env.test.toml" for overrides.
	err = os.Setenv(config.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration.
// It ensures that the configuration is loaded from TOML files only once and
// is cached in the package-level `state` variable for subsequent calls.
// This is the primary way tests should retrieve their configuration.
//
// Returns:
//   - A pointer to the loaded and cached config.Config struct.
func GetConfig() *config.Config {
	// Check if the config is already cached.
	if state.config == nil {
		// If not cached, set up the OS environment for the test configuration.
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		// Create a new, empty config struct.
		cfg := config.NewConfig()
		// Load the configuration from the TOML files into the struct.
		// `LoadConfig` handles the hierarchical loading (base file + test
		// override).
		config.LoadConfig(&cfg)
		// Cache the loaded config in our state manager.
		state.config = cfg
	}
	// Return the cached configuration.
	return state.config
}

// GetTestScreenplay returns a small two-scene screenplay used across the
// locator, structure, and workflow tests. The layout is deliberate: scene
// one holds two character cues and an action transition line, scene two a
// single cue, so tests can assert heading detection, cue extraction, and
// transition-keyword exclusion against known line numbers.
//
// Returns:
//   - A string containing the screenplay text.
func GetTestScreenplay() string {
	return `INT. OFFICE - DAY

MARGARET sits behind a cluttered desk, sorting through a stack of
unpaid invoices. The phone RINGS.

MARGARET
Hello? No, he's not here. He's never here.

She slams the receiver down.

DEREK
(through the doorway)
Was that about the shipment?

FADE TO BLACK.

EXT. STREET - NIGHT

Rain hammers the pavement. DEREK hurries along, collar up.

DEREK
(muttering)
She's going to kill me.
`
}

// generatedCharacters is the rotating cast used by GenerateScreenplay.
// Character cues must be all-caps letters only, so the names avoid digits.
var generatedCharacters = []string{"ALICE", "BEN", "CLARA", "DESMOND", "EVE"}

// GenerateScreenplay builds a synthetic screenplay with the requested
// number of scenes, alternating interior and exterior headings. Each scene
// carries a character cue and enough action text to make page estimates
// meaningful, which lets tests push a document past the full-mode and
// structured-mode page thresholds without shipping a real feature script.
//
// Inputs:
//   - sceneCount: The number of scenes to generate.
//   - linesPerScene: The number of filler action lines in each scene.
//
// Returns:
//   - A string containing the generated screenplay text.
func GenerateScreenplay(sceneCount, linesPerScene int) string {
	var sb strings.Builder
	for i := 0; i < sceneCount; i++ {
		if i%2 == 0 {
			fmt.Fprintf(&sb, "INT. LOCATION %d - DAY\n\n", i+1)
		} else {
			fmt.Fprintf(&sb, "EXT. LOCATION %d - NIGHT\n\n", i+1)
		}
		fmt.Fprintf(&sb, "%s\n", generatedCharacters[i%len(generatedCharacters)])
		sb.WriteString("This line of dialogue carries the scene forward.\n\n")
		for j := 0; j < linesPerScene; j++ {
			sb.WriteString("Action fills the frame while the story develops on the page.\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
