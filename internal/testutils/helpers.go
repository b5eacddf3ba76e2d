package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// PartDir writes the given part documents into a fresh directory and opens a
// loam repository over it. Keys are file names relative to the directory.
func PartDir(t *testing.T, files map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "write part %s", name)
	}

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "open part repository")
	return dir, repo
}
