package devenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	plain, err := ResolvePath("some/dir")
	require.NoError(t, err)
	require.Equal(t, "some/dir", plain)

	resolved, err := ResolvePath("<dev_state>/resty/riksdagen")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(resolved))
	require.Equal(t, filepath.Join("dev", ".state", "resty", "riksdagen"), trimRoot(t, resolved))

	info, err := os.Stat(filepath.Dir(filepath.Dir(resolved)))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func trimRoot(t *testing.T, path string) string {
	root, err := GetWorkspaceRoot()
	require.NoError(t, err)
	rel, err := filepath.Rel(root, path)
	require.NoError(t, err)
	return rel
}
