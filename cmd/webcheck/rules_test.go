package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_ListsCatalog(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "rules")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "a11y-img-alt")
	assert.Contains(t, string(output), "security-target-blank")
	assert.Contains(t, string(output), "perf-")
}

func TestRulesCommand_CategoryFilter(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "rules", "--category", "security")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "security-target-blank")
	assert.NotContains(t, string(output), "a11y-img-alt")
}

func TestRulesCommand_UnknownCategory(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "rules", "--category", "astrology")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "no rules in category")
}
