package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Input  string `json:"input"`
	Delay  string `json:"delay"`
	Nested struct {
		File string `json:"file"`
	} `json:"nested"`
}

func write(t *testing.T, path, contents string) {
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "riksvote.json5")
	write(t, name, `{
		// comments are allowed
		input: "votings.csv",
		delay: "1s",
		nested: { file: "cache.db" },
	}`)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "votings.csv", config.Input)
	require.Equal(t, "1s", config.Delay)
	require.Equal(t, "cache.db", config.Nested.File)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "riksvote.json5")
	write(t, name, `{input: "votings.csv", delay: "1s"}`)
	write(t, filepath.Join(dir, "riksvote.local.json5"), `{delay: "2s"}`)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "votings.csv", config.Input)
	require.Equal(t, "2s", config.Delay)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "riksvote.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	name := filepath.Join(t.TempDir(), "riksvote.json5")
	write(t, name, `{input: `)

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadOptional(t *testing.T) {
	dir := t.TempDir()
	fallback := testConfig{Input: "default.csv", Delay: "1s"}

	config, err := ReadOptional(filepath.Join(dir, "riksvote.json5"), fallback)
	require.NoError(t, err)
	require.Equal(t, fallback, config)

	name := filepath.Join(dir, "riksvote.json5")
	write(t, name, `{delay: "3s"}`)
	config, err = ReadOptional(name, fallback)
	require.NoError(t, err)
	require.Equal(t, "default.csv", config.Input)
	require.Equal(t, "3s", config.Delay)
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "dir/telemetry.local.json5", localPath("dir/telemetry.json5"))
	require.Equal(t, "config.local", localPath("config"))
}
