package harness

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunWithGolden executes a scenario in a fresh temp directory, checks the
// scenario's expectations with test assertions, and pins the final
// committed document against testdata/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, path string) {
	t.Helper()

	sc, err := LoadScenario(path)
	require.NoError(t, err, "load scenario")

	result, err := Run(sc, t.TempDir())
	require.NoError(t, err, "run scenario %s", sc.Name)

	assert.Equal(t, sc.Expect.State, string(result.State), "final state")
	assert.Equal(t, sc.Expect.Changed, result.Changed, "changed set")
	assert.Equal(t, sc.Expect.SnapshotExists, result.SnapshotExists, "snapshot presence")
	assert.Equal(t, sc.Expect.Artifacts, result.Artifacts, "artifacts")

	var buf bytes.Buffer
	require.NoError(t, result.Committed.Encode(&buf), "encode final document")

	g := goldie.New(t)
	g.Assert(t, sc.Name, buf.Bytes())
}
