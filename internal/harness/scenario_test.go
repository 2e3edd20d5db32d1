package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_FreshEditSave(t *testing.T) {
	RunWithGolden(t, "testdata/fresh_edit_save.yaml")
}

func TestScenario_ResumeAfterCrash(t *testing.T) {
	RunWithGolden(t, "testdata/resume_after_crash.yaml")
}

func TestScenario_DiscardAfterCrash(t *testing.T) {
	RunWithGolden(t, "testdata/discard_after_crash.yaml")
}

func TestScenario_CorruptSnapshotFresh(t *testing.T) {
	RunWithGolden(t, "testdata/corrupt_snapshot_fresh.yaml")
}

func TestScenario_BatchQuarterlyZeroFill(t *testing.T) {
	RunWithGolden(t, "testdata/batch_quarterly_zero_fill.yaml")
}

func TestScenario_DoubleSaveSuffix(t *testing.T) {
	RunWithGolden(t, "testdata/double_save_suffix.yaml")
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenario(t, `
baseline: "{}"
steps: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func TestLoadScenario_MissingBaseline(t *testing.T) {
	path := writeScenario(t, `
name: nameless
steps: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing baseline")
}

func TestLoadScenario_StepWithTwoActions(t *testing.T) {
	path := writeScenario(t, `
name: overloaded
baseline: "{}"
steps:
  - save: true
    corrupt_snapshot: true
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one action")
}

func TestLoadScenario_EmptyStep(t *testing.T) {
	path := writeScenario(t, `
name: hollow
baseline: "{}"
steps:
  - {}
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1")
}

func TestRun_RestartChoiceWithoutSnapshot(t *testing.T) {
	sc := &Scenario{
		Name:     "bad_choice",
		Baseline: `{"a": {"category": "C", "method": "single_value_fill", "input": 1, "quarters": null}}`,
		Steps: []Step{
			{Restart: &RestartStep{Choice: "resume"}},
		},
	}
	_, err := Run(sc, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no snapshot exists")
}

func TestRun_RestartWithoutChoiceWhenSnapshotExists(t *testing.T) {
	sc := &Scenario{
		Name:     "missing_choice",
		Baseline: `{"a": {"category": "C", "method": "single_value_fill", "input": 1, "quarters": null}}`,
		Steps: []Step{
			{Set: &SetStep{Variable: "a", Method: "single_value_fill", Value: "2"}},
			{Restart: &RestartStep{}},
		},
	}
	_, err := Run(sc, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs choice")
}
