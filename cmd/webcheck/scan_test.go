package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/webcheck/internal/types"
)

func TestScanCommand_MissingArgument(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "scan")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "arg")
}

func TestScanCommand_MissingTarget(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	cmd := exec.Command(binaryPath, "scan", filepath.Join(tmpDir, "absent.html"))
	cmd.Env = append(os.Environ(), "WEBCHECK_CACHE_DIR="+filepath.Join(tmpDir, "cache"))
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to stat")
}

func TestScanCommand_CleanFileExitsZero(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "clean.css")
	require.NoError(t, os.WriteFile(target, []byte("a { color: #000; background-color: #fff; }"), 0644))

	cmd := exec.Command(binaryPath, "scan", target)
	cmd.Env = append(os.Environ(), "WEBCHECK_CACHE_DIR="+filepath.Join(tmpDir, "cache"))
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, string(output))
	assert.Contains(t, string(output), "ok")
}

func TestScanCommand_HighSeverityExitsNonZero(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "bad.html")
	require.NoError(t, os.WriteFile(target,
		[]byte(`<img src="photo.jpg">`), 0644))

	cmd := exec.Command(binaryPath, "scan", target)
	cmd.Env = append(os.Environ(), "WEBCHECK_CACHE_DIR="+filepath.Join(tmpDir, "cache"))
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "high-severity")
}

func TestScanCommand_JSONOutput(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "page.html")
	require.NoError(t, os.WriteFile(target,
		[]byte(`<p id="x"></p><p id="x"></p>`), 0644))

	cmd := exec.Command(binaryPath, "scan", "--json", target)
	cmd.Env = append(os.Environ(), "WEBCHECK_CACHE_DIR="+filepath.Join(tmpDir, "cache"))
	output, _ := cmd.CombinedOutput()

	var result types.ScanResult
	require.NoError(t, json.Unmarshal(output, &result), string(output))
	assert.Equal(t, target, result.FileName)
	assert.NotEmpty(t, result.Issues)
}

func TestScanCommand_DirectoryReportJSON(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	siteDir := filepath.Join(tmpDir, "site")
	require.NoError(t, os.MkdirAll(siteDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "a.html"), []byte(`<p>ok</p>`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "b.css"), []byte("a { color: red; }"), 0644))

	cmd := exec.Command(binaryPath, "scan", "--json", siteDir)
	cmd.Env = append(os.Environ(), "WEBCHECK_CACHE_DIR="+filepath.Join(tmpDir, "cache"))
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	var report struct {
		RunID      string `json:"runId"`
		TotalFiles int    `json:"totalFiles"`
	}
	require.NoError(t, json.Unmarshal(output, &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.TotalFiles)
}
