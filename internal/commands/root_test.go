package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	// A nil slice would make cobra fall back to os.Args.
	rootCmd.SetArgs(append([]string{}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_NoArgsPrintsUsage(t *testing.T) {
	out, err := executeRoot(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestRootCommand_UnknownSubcommandPrintsUsage(t *testing.T) {
	// An unrecognized subcommand is not a failure: usage is shown and the
	// process exits zero.
	out, err := executeRoot(t, "frobnicate")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}
