// Package harness executes conformance scenarios against the session core.
// A scenario is a YAML file describing a baseline document, a sequence of
// operator actions (edits, batch applies, saves, simulated restarts), and
// the expected outcome. The final committed document is pinned with a
// golden file.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Baseline is the specification document the session loads, verbatim
	// JSON.
	Baseline string `yaml:"baseline"`

	// Steps are the operator actions, executed in order.
	Steps []Step `yaml:"steps"`

	// Expect validates the outcome after the last step.
	Expect Expect `yaml:"expect"`
}

// Step is one operator action. Exactly one field must be set.
type Step struct {
	// Set edits a single variable through a draft buffer.
	Set *SetStep `yaml:"set,omitempty"`

	// Batch applies one settings payload to many variables.
	Batch *BatchStep `yaml:"batch,omitempty"`

	// Save performs the final commit.
	Save bool `yaml:"save,omitempty"`

	// Restart simulates a process restart: a new recovery manager checks
	// the snapshot and resolves the resume-or-discard choice.
	Restart *RestartStep `yaml:"restart,omitempty"`

	// CorruptSnapshot overwrites the snapshot file with invalid JSON,
	// simulating a torn write before the next restart.
	CorruptSnapshot bool `yaml:"corrupt_snapshot,omitempty"`
}

// SetStep edits one variable. Value/Quarters/Values carry the operator's
// raw input and are parsed exactly as the CLI parses them.
type SetStep struct {
	Variable string   `yaml:"variable"`
	Method   string   `yaml:"method"`
	Value    string   `yaml:"value,omitempty"`
	Quarters string   `yaml:"quarters,omitempty"`
	Values   []string `yaml:"values,omitempty"`
}

// BatchStep applies one payload to the listed variables.
type BatchStep struct {
	Variables []string `yaml:"variables"`
	Method    string   `yaml:"method"`
	Value     string   `yaml:"value,omitempty"`
	Quarters  string   `yaml:"quarters,omitempty"`
	Values    []string `yaml:"values,omitempty"`
}

// RestartStep resolves the post-restart snapshot choice.
type RestartStep struct {
	// Choice is "resume" or "discard". Ignored (and must be empty) when
	// no snapshot exists after the restart.
	Choice string `yaml:"choice,omitempty"`
}

// Expect validates the scenario outcome.
type Expect struct {
	// State is the recovery manager's final state.
	State string `yaml:"state"`

	// Changed is the expected changed-variable set, in document order.
	Changed []string `yaml:"changed"`

	// SnapshotExists asserts on the snapshot file's presence.
	SnapshotExists bool `yaml:"snapshot_exists"`

	// Artifacts is the expected list of final artifact filenames, in
	// creation order. Deterministic because scenarios run on a fixed
	// clock.
	Artifacts []string `yaml:"artifacts,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if sc.Baseline == "" {
		return nil, fmt.Errorf("scenario %s: missing baseline", path)
	}
	for i, step := range sc.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: step %d: %w", path, i+1, err)
		}
	}
	return &sc, nil
}

func (s Step) validate() error {
	n := 0
	if s.Set != nil {
		n++
	}
	if s.Batch != nil {
		n++
	}
	if s.Save {
		n++
	}
	if s.Restart != nil {
		n++
	}
	if s.CorruptSnapshot {
		n++
	}
	if n != 1 {
		return fmt.Errorf("want exactly one action per step, got %d", n)
	}
	return nil
}
