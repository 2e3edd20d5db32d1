package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "forecfg", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"verbose", "format", "spec", "dir", "resume", "fresh"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag --%s", name)
	}

	want := []string{"validate", "categories", "show", "diff", "set", "batch", "save", "session"}
	var got []string
	for _, sub := range cmd.Commands() {
		got = append(got, sub.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name, "missing subcommand %s", name)
	}
}

func TestRootCommand_FlagDefaults(t *testing.T) {
	cmd := NewRootCommand()

	format, err := cmd.PersistentFlags().GetString("format")
	require.NoError(t, err)
	assert.Equal(t, "text", format)

	spec, err := cmd.PersistentFlags().GetString("spec")
	require.NoError(t, err)
	assert.Equal(t, "dummy_spec.json", spec)

	dir, err := cmd.PersistentFlags().GetString("dir")
	require.NoError(t, err)
	assert.Equal(t, ".", dir)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := executeCommand(t, "validate", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_ResumeFreshExclusive(t *testing.T) {
	_, err := executeCommand(t, "diff", "--resume", "--fresh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("yaml"))
	assert.False(t, isValidFormat(""))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "wrapped", assert.AnError)))
}

func TestSubcommands_SilenceUsage(t *testing.T) {
	cmd := NewRootCommand()
	var check func(*cobra.Command)
	check = func(c *cobra.Command) {
		for _, sub := range c.Commands() {
			if sub.RunE != nil {
				assert.True(t, sub.SilenceUsage, "%s should silence usage on errors", sub.CommandPath())
			}
			check(sub)
		}
	}
	check(cmd)
}
