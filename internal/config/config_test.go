package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	d := Defaults()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("manifest", d.Manifest, "")
	fs.String("package", d.Package, "")
	fs.String("comparator", d.Comparator, "")
	fs.Duration("timeout", 0, "")
	fs.Bool("dry-run", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, "", t.TempDir())
	require.NoError(t, err)

	want := Defaults()
	assert.Equal(t, want.Manifest, cfg.Manifest)
	assert.Equal(t, "./lib-version-check/prev.txt", cfg.Cache)
	assert.Equal(t, "AVRIO", cfg.Package)
	assert.Equal(t, []string{"pio", "pkg", "show", "{{package}}"}, cfg.CommandArgs())
	assert.Equal(t, "lexical", cfg.Comparator)
	assert.Empty(t, cfg.File)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".verbump.yaml"), []byte(`
manifest: from-file.json
package: FileLib
comparator: semver
timeout: 30s
`), 0o644))

	t.Setenv("VERBUMP_PACKAGE", "EnvLib")
	t.Setenv("VERBUMP_DRY_RUN", "true")

	cfg, err := Load(newFlags(t, "--manifest", "from-flag.json"), "", dir)
	require.NoError(t, err)

	assert.Equal(t, "from-flag.json", cfg.Manifest, "flag beats file")
	assert.Equal(t, "EnvLib", cfg.Package, "env beats file")
	assert.Equal(t, "semver", cfg.Comparator, "file beats default")
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, ".verbump.yaml", filepath.Base(cfg.File))
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Source = "npm"
	cfg.Comparator = "numeric"
	cfg.Package = " "
	cfg.Timeout = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"source: unsupported", "comparator:", "package: missing", "timeout:"} {
		assert.Contains(t, err.Error(), want)
	}

	cfg = Defaults()
	cfg.Source = SourceCommand
	cfg.Command = "  "
	require.ErrorContains(t, cfg.Validate(), "command: missing")

	cfg.Source = SourceGitHub
	require.NoError(t, cfg.Validate())
}
