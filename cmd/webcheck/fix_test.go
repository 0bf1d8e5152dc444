package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPreferences_EmptyPath(t *testing.T) {
	prefs, err := loadPreferences("")
	require.NoError(t, err)
	assert.Nil(t, prefs)
}

func TestLoadPreferences_ValidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"viewport: mobile\nlocale: fr\ncolor_scheme: dark\naccessibility_level: AA\n"), 0644))

	prefs, err := loadPreferences(path)
	require.NoError(t, err)

	assert.Equal(t, "mobile", prefs.Viewport)
	assert.Equal(t, "fr", prefs.Locale)
	assert.Equal(t, "dark", prefs.ColorScheme)
	assert.Equal(t, "AA", prefs.AccessibilityLevel)
}

func TestLoadPreferences_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("viewport: gigantic\n"), 0644))

	_, err := loadPreferences(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid preferences")
}

func TestLoadPreferences_MissingFile(t *testing.T) {
	_, err := loadPreferences(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read preferences file")
}

func TestFixCommand_WritesPatchFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "page.html")
	require.NoError(t, os.WriteFile(target,
		[]byte(`<html><head><title>t</title></head><body><img src="cat.jpg"></body></html>`), 0644))

	cmd := exec.Command(binaryPath, "fix", target)
	cmd.Env = append(os.Environ(), "WEBCHECK_CACHE_DIR="+filepath.Join(tmpDir, "cache"))
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	assert.Contains(t, string(output), "Patch written")
	patchData, err := os.ReadFile(target + ".patch")
	require.NoError(t, err)
	assert.Contains(t, string(patchData), `alt="Cat"`)

	// Source file is never modified
	original, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.NotContains(t, string(original), "alt=")
}

func TestFixCommand_DryRunWritesNothing(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "page.html")
	require.NoError(t, os.WriteFile(target,
		[]byte(`<html><head><title>t</title></head><body><img src="cat.jpg"></body></html>`), 0644))

	cmd := exec.Command(binaryPath, "fix", "--dry-run", target)
	cmd.Env = append(os.Environ(), "WEBCHECK_CACHE_DIR="+filepath.Join(tmpDir, "cache"))
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	assert.Contains(t, string(output), `alt="Cat"`)
	_, statErr := os.Stat(target + ".patch")
	assert.True(t, os.IsNotExist(statErr))
}

func TestFixCommand_UnsupportedFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("plain"), 0644))

	cmd := exec.Command(binaryPath, "fix", target)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unsupported file type")
}
