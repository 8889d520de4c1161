package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/internal/generator"
	jsonx "launchpad/internal/shared/json"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LAUNCHPAD_BACKEND_API_KEY", "")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "launchpad dev\n", out)
}

func TestGenerateCommandPrintsTemplateEventAsJSON(t *testing.T) {
	out, err := runCLI(t, "generate", "--json", "--topic", "AI", "--city", "Berlin", "--date", "2026-01-01")
	require.NoError(t, err)

	var res generator.Result
	require.NoError(t, jsonx.Unmarshal([]byte(out), &res))
	assert.Equal(t, "template", res.Mode)
	assert.Equal(t, "Berlin", res.Event.City)
	assert.NotEmpty(t, res.Event.HeroImageURL)
}

func TestGenerateCommandRequiresInput(t *testing.T) {
	_, err := runCLI(t, "generate", "--topic", "AI")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields: city, date")
}

func TestPromoteCommandSummary(t *testing.T) {
	out, err := runCLI(t, "promote", "--topic", "AI", "--city", "Berlin", "--date", "2026-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Promotion kit")
	assert.Contains(t, out, "day 14")
}
