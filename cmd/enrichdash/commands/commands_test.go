package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrichment-dash/cmd/enrichdash/commands"
	"enrichment-dash/internal/gene"
	"enrichment-dash/internal/ui"
)

func newCLI(t *testing.T, args ...string) (*commands.CLI, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cli := commands.New(&stdout, &stderr, commands.WithProgramRunner(func(context.Context, tea.Model) error {
		return nil
	}))
	cfg := filepath.Join(t.TempDir(), "rc")
	cli.SetArgs(append(args, "--config", cfg))
	return cli, &stdout, &stderr
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genes.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gene.WriteCSV(f, []gene.Record{
		{ID: "GeneA", X: 1.2, Y: 2.1, Q: 0.05},
		{ID: "GeneB", X: 2.3, Y: 1.9, Q: 0.01},
		{ID: "GeneC", X: 3.1, Y: 2.8, Q: 0.02},
	}))
	return path
}

func TestFilterJSONOnSimulatedData(t *testing.T) {
	cli, stdout, _ := newCLI(t, "filter", "--points", "50", "--seed", "7", "--query", "gene_1", "--format", "json")
	require.NoError(t, cli.Execute(context.Background()))

	var resp struct {
		Genes   []gene.Record `json:"genes"`
		Total   int           `json:"total"`
		Visible int           `json:"visible"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.Equal(t, 50, resp.Total)
	assert.Equal(t, len(resp.Genes), resp.Visible)
	require.NotEmpty(t, resp.Genes)
	for _, g := range resp.Genes {
		assert.Contains(t, strings.ToLower(g.ID), "gene_1")
	}
}

func TestFilterViewportCSV(t *testing.T) {
	data := writeDataset(t)
	cli, stdout, _ := newCLI(t, "filter", "--data", data,
		"--xmin", "1.0", "--xmax", "2.5", "--ymin", "1.5", "--ymax", "2.5", "--format", "csv")
	require.NoError(t, cli.Execute(context.Background()))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "GeneA,"))
	assert.True(t, strings.HasPrefix(lines[2], "GeneB,"))
}

func TestFilterSelectionTable(t *testing.T) {
	data := writeDataset(t)
	cli, stdout, _ := newCLI(t, "filter", "--data", data, "--select", "GeneC,Unknown", "--xmin", "0", "--xmax", "0")
	require.NoError(t, cli.Execute(context.Background()))

	out := stdout.String()
	assert.Contains(t, out, "GeneC")
	assert.NotContains(t, out, "GeneA")
	assert.Contains(t, out, "1 of 3 genes")
}

func TestFilterWhereColumn(t *testing.T) {
	data := writeDataset(t)
	cli, stdout, _ := newCLI(t, "filter", "--data", data, "--where", "Q_Value < 0.05", "--format", "csv")
	require.NoError(t, cli.Execute(context.Background()))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "GeneB,"))
	assert.True(t, strings.HasPrefix(lines[2], "GeneC,"))

	cli, _, _ = newCLI(t, "filter", "--data", data, "--where", "Q_Value ~ 1")
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), commands.ErrInvalidFlag.Error())
}

func TestFilterJSONNonFiniteAndEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Gene,Enrichment_Sample1,Enrichment_Sample2,Q_Value\nA,1,2,NaN\n"), 0o600))
	cli, _, _ := newCLI(t, "filter", "--data", path, "--format", "json")
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), gene.ErrMalformedRecord.Error())

	cli, stdout, _ := newCLI(t, "filter", "--points", "0", "--format", "json")
	require.NoError(t, cli.Execute(context.Background()))
	assert.JSONEq(t, `{"genes":[],"total":0,"visible":0}`, stdout.String())
}

func TestFilterFlagErrors(t *testing.T) {
	cli, _, _ := newCLI(t, "filter", "--points", "5", "--xmin", "1")
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), commands.ErrInvalidFlag.Error())

	cli, _, _ = newCLI(t, "filter", "--points", "5", "--format", "xml")
	require.Error(t, cli.Execute(context.Background()))

	cli, _, _ = newCLI(t, "filter", "--points", "-1")
	require.Error(t, cli.Execute(context.Background()))

	cli, _, _ = newCLI(t, "filter", "--points", "5", "--log-level", "loud")
	require.Error(t, cli.Execute(context.Background()))

	cli, _, _ = newCLI(t, "filter", "--data", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, cli.Execute(context.Background()))
}

func TestRootRunsDashboard(t *testing.T) {
	var stdout, stderr bytes.Buffer
	var got tea.Model
	cli := commands.New(&stdout, &stderr, commands.WithProgramRunner(func(_ context.Context, m tea.Model) error {
		got = m
		return nil
	}))
	cli.SetArgs([]string{"--points", "25", "--config", filepath.Join(t.TempDir(), "rc")})
	require.NoError(t, cli.Execute(context.Background()))

	m, ok := got.(ui.Model)
	require.True(t, ok, "expected ui.Model, got %T", got)
	assert.Len(t, m.Rows(), 25)
	assert.Empty(t, stderr.String(), "terminal commands must not log to stderr")
}

func TestTUIWritesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dash.log")
	cli, _, _ := newCLI(t, "tui", "--points", "5", "--log-level", "info", "--log-file", logPath)
	require.NoError(t, cli.Execute(context.Background()))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "simulating 5 genes")
}

func TestStdLogRoutedToLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dash.log")
	var stderr bytes.Buffer
	cli := commands.New(&bytes.Buffer{}, &stderr, commands.WithProgramRunner(func(context.Context, tea.Model) error {
		log.Print("library warning")
		return nil
	}))
	cli.SetArgs([]string{"tui", "--points", "3", "--log-file", logPath, "--config", filepath.Join(t.TempDir(), "rc")})
	require.NoError(t, cli.Execute(context.Background()))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "library warning")
	assert.Contains(t, string(data), `"level":"warn"`)
	assert.Empty(t, stderr.String())
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cli, _, _ := newCLI(t, "serve", "--points", "5", "--addr", "127.0.0.1:0")
	require.NoError(t, cli.Execute(ctx))
}

func TestConfigPrintAndSave(t *testing.T) {
	rc := filepath.Join(t.TempDir(), "rc")
	var stdout bytes.Buffer
	cli := commands.New(&stdout, &bytes.Buffer{})
	cli.SetArgs([]string{"config", "--config", rc, "--points", "12"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, stdout.String(), "ENRICHDASH_POINTS=12")

	cli = commands.New(&stdout, &bytes.Buffer{})
	cli.SetArgs([]string{"config", "--config", rc, "--seed", "9", "--save"})
	require.NoError(t, cli.Execute(context.Background()))
	data, err := os.ReadFile(rc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ENRICHDASH_SEED=9")
}
