// Package commands implements the CLI commands for enrichdash.
package commands

import (
	"context"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"enrichment-dash/internal/config"
	"enrichment-dash/internal/gene"
	"enrichment-dash/internal/infra/logx"
)

// ProgramRunner runs a Bubble Tea model until it quits.
type ProgramRunner func(ctx context.Context, m tea.Model) error

// Option customizes a CLI.
type Option func(*CLI)

// WithProgramRunner replaces the terminal program, for tests.
func WithProgramRunner(r ProgramRunner) Option {
	return func(c *CLI) { c.runProgram = r }
}

// CLI represents the command line interface for enrichdash.
type CLI struct {
	rootCmd    *cobra.Command
	stdout     io.Writer
	stderr     io.Writer
	runProgram ProgramRunner

	configPath string
	dataPath   string
	points     int
	seed       int64
	logLevel   string
	logFile    string

	cfg     config.Config
	logSink *os.File
}

// New creates a new CLI instance writing to stdout and stderr.
func New(stdout, stderr io.Writer, opts ...Option) *CLI {
	c := &CLI{stdout: stdout, stderr: stderr, runProgram: runTeaProgram}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd := &cobra.Command{
		Use:           "enrichdash",
		Short:         "Interactive gene enrichment dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "Config file (default ~/.enrichdashrc)")
	pf.StringVar(&c.dataPath, "data", "", "Dataset file (.csv, .yaml); simulated data when empty")
	pf.IntVar(&c.points, "points", 0, "Number of simulated genes")
	pf.Int64Var(&c.seed, "seed", 0, "Seed of the simulated data")
	pf.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&c.logFile, "log-file", "", "Append JSON logs to this file")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newTUICmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newFilterCmd())
	rootCmd.AddCommand(c.newConfigCmd())
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	defer c.closeLog()
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// setup loads the configuration, applies flags on top and configures
// logging. terminal reports whether the command owns the terminal, in which
// case logs only go to a file.
func (c *CLI) setup(cmd *cobra.Command, terminal bool) error {
	path := c.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath = c.dataPath
	}
	if flags.Changed("points") {
		if c.points < 0 {
			return zerr.With(config.ErrInvalidValue, "flag", "points")
		}
		cfg.Points = c.points
	}
	if flags.Changed("seed") {
		cfg.Seed = c.seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	c.cfg = cfg

	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logx.SetMinLevel(level)

	var sink io.Writer = c.stderr
	if terminal {
		sink = io.Discard
	}
	if c.logFile != "" {
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "open log file"), "path", c.logFile)
		}
		c.logSink = f
		sink = f
	}
	logx.SetOutput(sink)
	// stray log.Printf calls from libraries end up in the same stream
	log.SetFlags(0)
	log.SetOutput(logx.StdlogWriter(logx.LevelWarn, nil))
	return nil
}

func (c *CLI) closeLog() {
	if c.logSink != nil {
		logx.SetOutput(c.stderr)
		_ = c.logSink.Close()
		c.logSink = nil
	}
}

// dataset loads the configured file or simulates one.
func (c *CLI) dataset() (*gene.Dataset, error) {
	if c.cfg.DataPath != "" {
		ds, err := gene.Load(c.cfg.DataPath)
		if err != nil {
			return nil, err
		}
		logx.Infof("loaded %d genes from %s", ds.Len(), c.cfg.DataPath)
		return ds, nil
	}
	logx.Infof("simulating %d genes (seed %d)", c.cfg.Points, c.cfg.Seed)
	return gene.Simulate(c.cfg.Points, c.cfg.Seed), nil
}

func runTeaProgram(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
