package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvExtensions, EnvExcludes, EnvLogLevel, EnvIncludeBlanks} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_NoFiles(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_ProjectFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "extensions: [.h, .cpp]\nexcludes:\n  - build\nincludeDirs: [include]\nincludeBlanks: true\ngitignore: true\nlogLevel: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ccloc.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, []string{".h", ".cpp"}, cfg.Extensions)
	assert.Equal(t, []string{"build"}, cfg.Excludes)
	assert.Equal(t, []string{"include"}, cfg.IncludeDirs)
	assert.True(t, cfg.IncludeBlanks)
	assert.True(t, cfg.Gitignore)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "ccloc.yaml"), cfg.Source)
}

func TestLoad_EnvPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ccloc.yml"), []byte("extensions: [.h]\nlogLevel: info\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CCLOC_EXTS=.hpp,.cpp\nCCLOC_LOG_LEVEL=error\n"), 0o644))
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, []string{".hpp", ".cpp"}, cfg.Extensions)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ExplicitPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("excludes: [third_party]\n"), 0o644))

	cfg, err := Load(t.TempDir(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"third_party"}, cfg.Excludes)

	_, err = Load(dir, filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	t.Setenv(EnvIncludeBlanks, "sometimes")
	_, err := Load(dir, "")
	require.Error(t, err)

	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ccloc.yml"), []byte("extensions: {not: [a list\n"), 0o644))
	_, err = Load(dir, "")
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{".h", ".cc", ".ipp"}, splitList(" .h, .cc ,,.ipp"))
	assert.Empty(t, splitList(" , "))
}
