package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStatsCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	cmd := exec.Command(binaryPath, "cache", "stats")
	cmd.Env = append(os.Environ(), "WEBCHECK_CACHE_DIR="+filepath.Join(tmpDir, "cache"))
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "hits=0")
	assert.Contains(t, string(output), "persistent=0")
}

func TestCacheClearCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	cacheDir := filepath.Join(tmpDir, "cache")
	env := append(os.Environ(), "WEBCHECK_CACHE_DIR="+cacheDir)

	// Populate the cache with one scan
	target := filepath.Join(tmpDir, "page.html")
	require.NoError(t, os.WriteFile(target, []byte(`<p>hello</p>`), 0644))
	scan := exec.Command(binaryPath, "scan", target)
	scan.Env = env
	scanOutput, err := scan.CombinedOutput()
	require.NoError(t, err, string(scanOutput))

	entries, err := filepath.Glob(filepath.Join(cacheDir, "*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	clear := exec.Command(binaryPath, "cache", "clear")
	clear.Env = env
	clearOutput, err := clear.CombinedOutput()
	require.NoError(t, err, string(clearOutput))
	assert.Contains(t, string(clearOutput), "Cleared 1")

	entries, err = filepath.Glob(filepath.Join(cacheDir, "*.json"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
