package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	cmd := newVersionCmd()
	cmd.SetOut(out)

	require.NoError(t, cmd.Execute())

	output := out.String()
	require.Contains(t, output, "dsfile dev")
	require.Contains(t, output, "commit: none")
	require.Contains(t, output, "built: unknown")
}
