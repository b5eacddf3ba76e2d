package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var physics = filepath.Join("..", "..", "examples", "physics", "robot.yaml")

// execute runs the root command once. Cobra keeps flag values between
// runs, so every test uses its own subcommand.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "kinetree version "))
}

func TestRenderCommand(t *testing.T) {
	out, err := execute(t, "render", physics, "--indent", "tab")
	require.NoError(t, err)
	assert.Contains(t, out, "<robot name=\"physics\">\n\t<link name=\"base_link\">")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", physics)
	require.NoError(t, err)
	assert.Contains(t, out, `is valid: robot "physics": 9 links, 8 joints`)
}

func TestInspectCommand_Mermaid(t *testing.T) {
	out, err := execute(t, "inspect", physics, "--format", "mermaid")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "left_front_wheel")
}

func TestStoreCommands_SQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "robots.db")

	out, err := execute(t, "store", "put", "physics", physics, "--driver", "sqlite", "--store-path", db)
	require.NoError(t, err)
	assert.Contains(t, out, "stored physics")

	out, err = execute(t, "store", "get", "physics", "--driver", "sqlite", "--store-path", db)
	require.NoError(t, err)
	assert.Contains(t, out, `<robot name="physics">`)

	out, err = execute(t, "store", "list", "--driver", "sqlite", "--store-path", db)
	require.NoError(t, err)
	assert.Equal(t, "physics\n", out)
}

func TestPartsCommand_RequiresLibrary(t *testing.T) {
	_, err := execute(t, "parts", "list")
	assert.ErrorIs(t, err, errNoParts)
}
