package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"enrichment-dash/cmd/enrichdash/commands"
)

func TestRun(t *testing.T) {
	noTerminal := commands.WithProgramRunner(func(context.Context, tea.Model) error { return nil })
	tests := []struct {
		name         string
		args         []string
		expectedExit int
		stderr       string
	}{
		{name: "filter", args: []string{"filter", "--points", "3"}, expectedExit: 0},
		{name: "dashboard", args: []string{"--points", "3"}, expectedExit: 0},
		{name: "unknown flag", args: []string{"--nope"}, expectedExit: 1, stderr: "Error:"},
		{name: "bad range", args: []string{"filter", "--ymax", "1"}, expectedExit: 1, stderr: "invalid flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append(tt.args, "--config", filepath.Join(t.TempDir(), "rc"))
			code := run(args, &stdout, &stderr, noTerminal)
			assert.Equal(t, tt.expectedExit, code)
			if tt.stderr != "" {
				assert.Contains(t, stderr.String(), tt.stderr)
			}
		})
	}
}
